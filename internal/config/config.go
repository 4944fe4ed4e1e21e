// Package config loads targetinfo.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"targetinfo/internal/trace"
	"targetinfo/internal/triple"
)

// FileName is the name of the configuration file looked up by Discover.
const FileName = "targetinfo.toml"

// Config is the decoded configuration file.
type Config struct {
	Path   string       `toml:"-"`
	Select SelectConfig `toml:"select"`
	Trace  TraceConfig  `toml:"trace"`
	Output OutputConfig `toml:"output"`
}

// SelectConfig holds the defaults for target selection.
type SelectConfig struct {
	Triple string `toml:"triple"`
	March  string `toml:"march"`
}

// TraceConfig mirrors the --trace* flags.
type TraceConfig struct {
	Level    string `toml:"level"`
	Mode     string `toml:"mode"`
	Format   string `toml:"format"`
	Output   string `toml:"output"`
	RingSize int    `toml:"ring_size"`
}

// OutputConfig mirrors the --color and --format flags.
type OutputConfig struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Trace:  TraceConfig{Level: "off", Mode: "stream", Format: "auto"},
		Output: OutputConfig{Color: "auto", Format: "pretty"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest configuration file above startDir, falling back
// to Default when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes and validates the file at path. Keys missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.validate(meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate(meta toml.MetaData) error {
	if meta.IsDefined("select", "triple") {
		if _, err := triple.Parse(c.Select.Triple); err != nil {
			return fmt.Errorf("[select].triple: %w", err)
		}
	}
	if meta.IsDefined("select", "march") && strings.TrimSpace(c.Select.March) == "" {
		return errors.New("[select].march must not be empty")
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	if c.Trace.RingSize < 0 {
		return fmt.Errorf("[trace].ring_size must not be negative, got %d", c.Trace.RingSize)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: unsupported value %q (must be auto, on or off)", c.Output.Color)
	}
	switch c.Output.Format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("[output].format: unsupported value %q (must be pretty, json or msgpack)", c.Output.Format)
	}
	return nil
}

// TracerConfig converts the [trace] section into a tracer configuration.
func (c *Config) TracerConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	mode, err := trace.ParseMode(c.Trace.Mode)
	if err != nil {
		return trace.Config{}, err
	}
	format, err := trace.ParseFormat(c.Trace.Format)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: c.Trace.Output,
		RingSize:   c.Trace.RingSize,
	}, nil
}
