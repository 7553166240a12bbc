// cmd/tidemark/main.go
package main

import (
	"fmt"
	stlog "log" // Standard log for errors before the logger is ready
	"os"

	"github.com/bethropolis/tidemark/internal/app"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	if _, err := flags.ParseFlags(nil, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, Version)
		return
	}

	// --- Configuration ---
	cfg, cfgErr := config.Load(*flags.ConfigFilePath, &flags)

	// --- Logger Initialization ---
	logOutput, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log output: %v", err)
	}
	defer logOutput.Close()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s...", config.AppName, Version)
	if cfgErr != nil {
		logger.Warnf("Config file not applied, using defaults: %v", cfgErr)
	}
	for _, key := range cfg.Unrecognized {
		logger.Warnf("Unrecognized config key: %s", key)
	}
	flags.LogOverrides()
	logger.Debugf("Storage: backend=%s path=%s key=%s", cfg.Storage.Backend, cfg.Storage.Path, cfg.Storage.Key)

	// --- Create and Run App ---
	tidemarkApp, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		logOutput.Close()
		os.Exit(1)
	}

	if err := tidemarkApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		logOutput.Close()
		os.Exit(1)
	}

	logger.Infof("Tidemark finished.")
}
