package config

import "time"

// Base application details
const AppName = "mdnav"
const ConfigDirName = "mdnav"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "mdnav.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Navigation behavior defaults
const AudioIndication = true
const TrapNonCommandGestures = true
const SystemClipboard = true

// DefaultWebApps is the default browser allow-list for flat text
// navigation.
var DefaultWebApps = []string{"chrome", "msedge", "firefox", "opera", "brave", "browser"}
