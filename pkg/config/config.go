// Package config loads the lsic settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"lsic/pkg/lsi"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".lsic.toml"

// Output formats understood by the report package.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds the complete lsic configuration.
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
}

// LexerConfig mirrors lsi.LexOptions.
type LexerConfig struct {
	AllowAdjacentOperators bool `toml:"allow_adjacent_operators"`
	SkipComments           bool `toml:"skip_comments"`
}

type OutputConfig struct {
	Format  string `toml:"format"`
	NoColor bool   `toml:"no_color"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the TOML file at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover loads path when it is set. Otherwise it loads DefaultFile from the
// working directory if one exists, and falls back to Default. The returned
// string is the file that was read, empty for defaults.
func Discover(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		cfg, err := Load(DefaultFile)
		return cfg, DefaultFile, err
	}
	return Default(), "", nil
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
}

// Validate checks values the TOML decoder cannot.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatYAML, FormatJSON:
		return nil
	case "":
		return errors.New("output.format must not be empty")
	}
	return fmt.Errorf("output.format %q is not one of %s, %s, %s", c.Output.Format, FormatText, FormatYAML, FormatJSON)
}

// LexOptions converts the lexer section for lsi.TokenizeWithOptions.
func (c *Config) LexOptions() lsi.LexOptions {
	return lsi.LexOptions{
		AllowAdjacentOperators: c.Lexer.AllowAdjacentOperators,
		SkipComments:           c.Lexer.SkipComments,
	}
}
