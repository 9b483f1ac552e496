// Package config loads the xdl command's settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the home directory.
const FileName = ".xdlrc.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the command line and REPL settings.
type Config struct {
	Prompt             string   `yaml:"prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
	HistoryFile        string   `yaml:"history_file"`
	Startup            []string `yaml:"startup"` // scripts run before the REPL or the main file
	Trace              bool     `yaml:"trace"`
	Color              string   `yaml:"color"` // auto, always or never
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Prompt:             "XDL> ",
		ContinuationPrompt: "...  ",
		HistoryFile:        "~/.xdl_history",
		Color:              ColorAuto,
	}
}

// DefaultPath returns $HOME/.xdlrc.yaml, or "" when there is no home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the file at path. An empty path means DefaultPath, and a
// missing default file yields the defaults; a missing explicit path is an
// error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Parse(strings.NewReader(""))
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Parse(strings.NewReader(""))
		}
		return nil, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a configuration from r on top of the defaults. Unknown
// fields are rejected.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.HistoryFile = expandHome(c.HistoryFile)
	for i, s := range c.Startup {
		c.Startup[i] = expandHome(s)
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	case "":
		c.Color = ColorAuto
	default:
		return fmt.Errorf("color: %q is not one of auto, always, never", c.Color)
	}
	return nil
}

// UseColor decides whether to color output for a stream that is or is not
// a terminal.
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return isTerminal
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
