// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Backends selectable via the -b flag.
const (
	// BackendFile stores state in a single JSON file.
	BackendFile = "file"
	// BackendSQLite stores state in a local SQLite database.
	BackendSQLite = "sqlite"
)

// Options holds the configuration values for the application.
type Options struct {
	// Backend selects the storage backend ("file" or "sqlite").
	Backend string

	// StoragePath is the path of the backing file or database.
	StoragePath string

	// LogLevel sets the minimum logging level.
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Backend, "b", BackendFile, "storage backend: file | sqlite")
	flag.StringVar(&options.StoragePath, "s", "board.json", "path to the storage file or database")
	flag.StringVar(&options.LogLevel, "l", "info", "log level: debug | info | warn | error")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		options.Backend = backend
	}
	if path := os.Getenv("STORAGE_PATH"); path != "" {
		options.StoragePath = path
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
