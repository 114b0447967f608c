package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genProfileName generates browser profile names
func genProfileName() gopter.Gen {
	return gen.RegexMatch(`^[A-Za-z][A-Za-z0-9 _-]{0,15}$`)
}

// genConfig generates Config structs
func genConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.SliceOfN(3, genProfileName()),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	).Map(func(values []interface{}) *Config {
		return &Config{
			Profiles:  values[0].([]string),
			EnableOWL: values[1].(bool),
			EnableOWC: values[2].(bool),
			Headless:  values[3].(bool),
			Debug:     values[4].(bool),
		}
	})
}

// TestConfigRoundTrip tests that saving then loading yields the same record
func TestConfigRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Config JSON round-trip preserves data", prop.ForAll(
		func(cfg *Config) bool {
			tmpDir, err := os.MkdirTemp("", "config-test-*")
			if err != nil {
				t.Logf("Failed to create temp dir: %v", err)
				return false
			}
			defer os.RemoveAll(tmpDir)

			configPath := filepath.Join(tmpDir, "config.json")

			if err := cfg.SaveTo(configPath); err != nil {
				t.Logf("Failed to save config: %v", err)
				return false
			}

			loaded, err := LoadFrom(configPath)
			if err != nil {
				t.Logf("Failed to load config: %v", err)
				return false
			}

			return reflect.DeepEqual(cfg, loaded)
		},
		genConfig(),
	))

	properties.TestingRun(t)
}

// TestMissingConfigFileReturnsDefault tests that a missing file yields defaults without writing
func TestMissingConfigFileReturnsDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.json")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults, got: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Profiles, []string{"default"}) {
		t.Errorf("Expected profiles [default], got: %v", cfg.Profiles)
	}
	if !cfg.EnableOWL || cfg.EnableOWC || cfg.Headless || cfg.Debug {
		t.Errorf("Unexpected default flags: %+v", cfg)
	}

	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("Loading a missing config must not create the file")
	}
}

// TestSaveUsesFourSpaceIndent tests the on-disk layout
func TestSaveUsesFourSpaceIndent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")

	if err := Default().SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}

	want := `{
    "profiles": [
        "default"
    ],
    "enable_owl": true,
    "enable_owc": false,
    "headless": false,
    "debug": false
}`
	if string(data) != want {
		t.Errorf("unexpected file content:\n%s\nwant:\n%s", data, want)
	}
}

// TestSaveOverwritesWholeFile tests that saving a fresh record replaces the file
func TestSaveOverwritesWholeFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	stale := `{"profiles": ["a", "b", "c"], "debug": true, "extra": 1}`
	if err := os.WriteFile(configPath, []byte(stale), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Profiles: []string{"x"}}
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	data, _ := os.ReadFile(configPath)
	if strings.Contains(string(data), "extra") {
		t.Errorf("stale key survived save: %s", data)
	}
}

// TestSaveKeepsUnknownKeys tests that a load/save cycle does not drop keys owlwatch ignores
func TestSaveKeepsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	content := `{"profiles": ["main"], "extra": 42, "window": {"width": 800}, "debug": true}`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if err := cfg.Set("headless", "true"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
    "profiles": [
        "main"
    ],
    "enable_owl": false,
    "enable_owc": false,
    "headless": true,
    "debug": true,
    "extra": 42,
    "window": {
        "width": 800
    }
}`
	if string(data) != want {
		t.Errorf("unexpected file content:\n%s\nwant:\n%s", data, want)
	}

	reloaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, reloaded) {
		t.Errorf("reloaded config differs: %+v vs %+v", reloaded, cfg)
	}
}

// TestLoadTrustsPartialFile tests that missing keys load as zero values
func TestLoadTrustsPartialFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"headless": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !cfg.Headless || cfg.EnableOWL || cfg.Profiles != nil {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

// TestLoadInvalidJSON tests that a corrupt file is reported
func TestLoadInvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"profiles": [`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

// TestConfigPathsUseXDG tests XDG_CONFIG_HOME handling
func TestConfigPathsUseXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error: %v", err)
	}
	if path != filepath.Join(xdg, "owlwatch", "config.json") {
		t.Errorf("unexpected default path: %s", path)
	}
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		check   func(*Config) bool
		wantErr error
	}{
		{"headless", "true", func(c *Config) bool { return c.Headless }, nil},
		{"enable_owl", "false", func(c *Config) bool { return !c.EnableOWL }, nil},
		{"enable_owc", "1", func(c *Config) bool { return c.EnableOWC }, nil},
		{"debug", "T", func(c *Config) bool { return c.Debug }, nil},
		{"profiles", "main, alt ,", func(c *Config) bool {
			return reflect.DeepEqual(c.Profiles, []string{"main", "alt"})
		}, nil},
		{"profiles", " , ", nil, ErrInvalidValue},
		{"headless", "maybe", nil, ErrInvalidValue},
		{"volume", "11", nil, ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%q, %q) left config %+v", tt.key, tt.value, cfg)
			}
		})
	}
}
