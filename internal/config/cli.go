// Package config declares the command line surface of schemagen.
package config

import "github.com/april-engine/schemagen/internal/cmd"

// Log selects log verbosity, destination and format.
type Log struct {
	Level  string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"SCHEMAGEN_LOG_LEVEL"`
	File   string `help:"Also write logs to this file" env:"SCHEMAGEN_LOG_FILE"`
	Format string `help:"Console log format: auto, text, json" default:"auto" enum:"auto,text,json" env:"SCHEMAGEN_LOG_FORMAT"`
}

// CLI is the root kong model.
type CLI struct {
	ConfigFile string `name:"config" help:"Path to a JSON, YAML or TOML config file" env:"SCHEMAGEN_CONFIG"`
	Log        Log    `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate C++ headers and Slang companions from shared schemas"`
	Layout   cmd.Layout        `cmd:"" help:"Print the resolved struct layouts of shared schemas"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
