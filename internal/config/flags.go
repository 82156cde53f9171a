// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	SystemClipboard *bool
	AudioIndication *bool
	TrapGestures    *bool
	WebApps         *string
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.SystemClipboard = flag.Bool("system-clipboard", true, "Route copy commands through the OS clipboard - Overrides config file")
	f.AudioIndication = flag.Bool("audio-indication", true, "Tone instead of speech when browse mode toggles - Overrides config file")
	f.TrapGestures = flag.Bool("trap-gestures", true, "Swallow unbound single letters in browse mode - Overrides config file")
	f.WebApps = flag.String("web-apps", "", "Comma-separated browser allow-list for flat text navigation - Overrides config file")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments (e.g., the file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args() // Return non-flag arguments
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	// Visit only processes flags that were actually set
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil { // Empty string is valid ("-")
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "system-clipboard":
			if f.SystemClipboard != nil {
				cfg.Navigator.SystemClipboard = *f.SystemClipboard
			}
		case "audio-indication":
			if f.AudioIndication != nil {
				cfg.Navigator.AudioIndication = *f.AudioIndication
			}
		case "trap-gestures":
			if f.TrapGestures != nil {
				cfg.Navigator.TrapNonCommandGestures = *f.TrapGestures
			}
		case "web-apps":
			if f.WebApps != nil && *f.WebApps != "" {
				cfg.Navigator.WebApps = splitCommaList(*f.WebApps)
			}
		}
	})
}

// Helper function to split comma-separated list (can be moved to util)
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
