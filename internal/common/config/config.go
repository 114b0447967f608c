package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// Config represents the application configuration.
// The file is trusted as-is: missing keys load as zero values and keys
// owlwatch does not know are carried through to the next save.
type Config struct {
	Profiles  []string `json:"profiles" yaml:"profiles"`
	EnableOWL bool     `json:"enable_owl" yaml:"enable_owl"`
	EnableOWC bool     `json:"enable_owc" yaml:"enable_owc"`
	Headless  bool     `json:"headless" yaml:"headless"`
	Debug     bool     `json:"debug" yaml:"debug"`

	// extra holds unknown top-level keys, raw
	extra map[string]json.RawMessage
}

// plainConfig has Config's fields without its JSON methods
type plainConfig Config

// UnmarshalJSON decodes the known keys and keeps the rest
func (c *Config) UnmarshalJSON(data []byte) error {
	var known plainConfig
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	// encoding/json matches field names case-insensitively
	for key := range all {
		for _, k := range Keys {
			if strings.EqualFold(key, k) {
				delete(all, key)
				break
			}
		}
	}

	*c = Config(known)
	c.extra = nil
	if len(all) > 0 {
		c.extra = all
	}
	return nil
}

// MarshalJSON writes the known keys in file order followed by any unknown
// keys in sorted order.
func (c Config) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(plainConfig(c))
	if err != nil || len(c.extra) == 0 {
		return known, err
	}

	keys := make([]string, 0, len(c.extra))
	for k := range c.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(known[:len(known)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(c.extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys lists the config keys in file order
var Keys = []string{"profiles", "enable_owl", "enable_owc", "headless", "debug"}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Profiles:  []string{"default"},
		EnableOWL: true,
		EnableOWC: false,
		Headless:  false,
		Debug:     false,
	}
}

// Dir returns the owlwatch config directory ($XDG_CONFIG_HOME/owlwatch)
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return filepath.Join(xdgConfig, "owlwatch"), nil
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/owlwatch/config.json (XDG standard - priority)
// 2. ~/.owlwatch/config.json (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	return []string{
		filepath.Join(dir, "config.json"),
		filepath.Join(home, ".owlwatch", "config.json"),
	}, nil
}

// DefaultConfigPath returns the default config file path (XDG standard)
func DefaultConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path.
// A missing file yields the defaults; nothing is written.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo overwrites path with the whole configuration, indented by four spaces
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Set assigns value to key. Booleans accept strconv.ParseBool forms,
// profiles take a comma-separated list.
func (c *Config) Set(key, value string) error {
	if key == "profiles" {
		var profiles []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				profiles = append(profiles, p)
			}
		}
		if len(profiles) == 0 {
			return fmt.Errorf("%w: profiles must name at least one profile", ErrInvalidValue)
		}
		c.Profiles = profiles
		return nil
	}

	var target *bool
	switch key {
	case "enable_owl":
		target = &c.EnableOWL
	case "enable_owc":
		target = &c.EnableOWC
	case "headless":
		target = &c.Headless
	case "debug":
		target = &c.Debug
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidValue, key, value)
	}
	*target = b
	return nil
}
