package config

import "time"

// Base application details
const AppName = "tidemark"
const DefaultConfigFileName = "config.toml" // Main config file
const ThemesDirName = "themes" // Theme files, next to the config file

// Storage
const DefaultBackend = "file"
const DefaultDocumentKey = "editorContent"
const DocumentsDirName = "documents"
const SQLiteFileName = "tidemark.db"

// Status Bar
const MessageTimeout = 4 * time.Second

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultHistorySize = 100
const DefaultScrollOff = 2
const SystemClipboard = true
