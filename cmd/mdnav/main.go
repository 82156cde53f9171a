// cmd/mdnav/main.go
package main

import (
	"fmt"
	stlog "log"
	"os"

	"github.com/bethropolis/mdnav/internal/app"
	"github.com/bethropolis/mdnav/internal/config"
	"github.com/bethropolis/mdnav/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.md>\n", config.AppName)
		os.Exit(2)
	}
	filePath := args[0]

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	output, closer, err := cfg.Logger.Output()
	if err != nil {
		stlog.Fatalf("Failed to open log output: %v", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	logger.Init(cfg.Logger.Level(), output)

	logger.Infof("Starting %s %s", config.AppName, version)
	logger.Debugf("Opening file: %s", filePath)

	navApp, err := app.NewApp(filePath, cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := navApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
