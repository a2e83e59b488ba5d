// Package config loads and persists atomico.json, the project
// configuration file.
//
// Load reads a config from an explicit directory; Find searches the
// working directory and its ancestors, so commands work from anywhere
// inside a project. Missing fields fall back to defaults.
package config
