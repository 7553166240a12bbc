package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	// Logger filters
	EnableTags  *string
	DisableTags *string
	EnablePkgs  *string
	DisablePkgs *string

	Storage         *string
	StoragePath     *string
	Key             *string
	ThemeFile       *string
	ThemeName       *string
	HistorySize     *int
	SystemClipboard *bool
}

// DefineFlags sets up the flags on fs, or on the process command line when fs is nil.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML or YAML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.Storage = fs.String("storage", "", "Storage backend (file, sqlite, memory) - Overrides config file")
	f.StoragePath = fs.String("storage-path", "", "Storage directory (file) or database file (sqlite) - Overrides config file")
	f.Key = fs.String("key", "", fmt.Sprintf("Storage key of the document (default %q)", DefaultDocumentKey))
	f.ThemeFile = fs.String("theme", "", "Path to a TOML theme file - Overrides config file")
	f.ThemeName = fs.String("theme-name", "", "Name of a theme in the themes directory - Overrides config file")
	f.HistorySize = fs.Int("history", 0, "Number of undo steps to keep - Overrides config file") // Use 0 to indicate unset
	f.SystemClipboard = fs.Bool("system-clipboard", SystemClipboard, "Use the system clipboard instead of an internal register")
}

// ParseFlags parses args into the Flags struct and returns the remaining
// non-flag arguments. With a nil fs the process command line is used.
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid (default path)
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "storage":
			cfg.Storage.Backend = *f.Storage
		case "storage-path":
			cfg.Storage.Path = *f.StoragePath
		case "key":
			if *f.Key != "" {
				cfg.Storage.Key = *f.Key
			}
		case "theme":
			cfg.Editor.ThemeFile = *f.ThemeFile
		case "theme-name":
			cfg.Editor.Theme = *f.ThemeName
		case "history":
			if *f.HistorySize > 0 {
				cfg.Editor.HistorySize = *f.HistorySize // Only override if positive
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		}
	})
}

// LogOverrides reports which flags were set. Call it after logger.Init.
func (f *Flags) LogOverrides() {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Flag override: -%s=%s", fl.Name, fl.Value)
	})
}

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
