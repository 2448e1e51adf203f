package main

import (
	"github.com/horgh/config"
	"github.com/pkg/errors"
)

// Config holds a server's configuration. Unlike the teacher's Config, it
// carries nothing for TS6 linking, pings/dead-time, or opers: those
// concerns belong to the excluded S2S/OPER subsystems (spec.md §1
// Non-goals). Config itself carries the server's identity strings
// (ServerName, Version, MOTD, Network) as struct fields rather than bare
// package constants, per SPEC_FULL.md §3 — this is grounded directly in
// this same teacher Config carrying ServerName, Version, and MOTD as
// struct fields.
type Config struct {
	ListenHost string
	ListenPort string

	ServerName  string
	Version     string
	CreatedDate string
	MOTD        string
	Network     string
}

// loadConfig reads and validates a flat key=value configuration file
// using github.com/horgh/config, the same library and required-key-list
// style as the teacher's checkAndParseConfig.
func loadConfig(path string) (*Config, error) {
	configMap, err := config.ReadStringMap(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	requiredKeys := []string{
		"listen-host",
		"listen-port",
		"server-name",
		"version",
		"created-date",
		"motd",
		"network",
	}

	for _, key := range requiredKeys {
		v, exists := configMap[key]
		if !exists {
			return nil, errors.Errorf("missing required key: %s", key)
		}
		if key != "motd" && len(v) == 0 {
			return nil, errors.Errorf("configuration value is blank: %s", key)
		}
	}

	return &Config{
		ListenHost:  configMap["listen-host"],
		ListenPort:  configMap["listen-port"],
		ServerName:  configMap["server-name"],
		Version:     configMap["version"],
		CreatedDate: configMap["created-date"],
		MOTD:        configMap["motd"],
		Network:     configMap["network"],
	}, nil
}

// defaultConfig returns the spec's compile-time defaults (spec.md §6),
// used when no config file is given, matching args.go's "-conf is
// optional, falls back to built-in defaults" shape adapted from the
// teacher's required-flag version (the teacher requires -conf; this spec
// has no bootstrap-layer requirement forcing that, so a flagless default
// listener is in scope).
func defaultConfig() *Config {
	return &Config{
		ListenHost:  "0.0.0.0",
		ListenPort:  "6667",
		ServerName:  "akiRC.chat",
		Version:     "akiRC_0.3.0",
		CreatedDate: "",
		MOTD:        "<3",
		Network:     "akiRC",
	}
}
