// Package config holds the game constants and the host configuration.
//
// Host settings are read from a YAML or TOML file (chosen by extension) and
// may be overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Defaults for host settings.
const (
	DefaultSSHHost     = "::"
	DefaultSSHPort     = "2222"
	DefaultHostKeyPath = "/app/keys/host_key"
	DefaultLogLevel    = "info"
)

// ErrUnknownFormat is returned by Load for files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config is the host configuration for the terminal and SSH front ends.
type Config struct {
	SSH     SSHConfig     `yaml:"ssh" toml:"ssh"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Display DisplayConfig `yaml:"display" toml:"display"`
	Game    GameConfig    `yaml:"game" toml:"game"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Host        string        `yaml:"host" toml:"host"`
	Port        string        `yaml:"port" toml:"port"`
	HostKey     string        `yaml:"host_key" toml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout" toml:"idle_timeout"` // Zero disables the idle disconnect
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"` // Log destination for the local game, which owns the terminal
}

// DisplayConfig maps viewport pixels to terminal cells.
type DisplayConfig struct {
	CellWidth  int `yaml:"cell_width" toml:"cell_width"`
	CellHeight int `yaml:"cell_height" toml:"cell_height"`
}

// GameConfig holds the engine settings a host may change.
type GameConfig struct {
	Tick time.Duration `yaml:"tick" toml:"tick"`
	Seed uint64        `yaml:"seed" toml:"seed"` // Zero picks a random seed
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SSH: SSHConfig{
			Host:        DefaultSSHHost,
			Port:        DefaultSSHPort,
			HostKey:     DefaultHostKeyPath,
			IdleTimeout: InactivityDisconnectUser,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Display: DisplayConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
		Game: GameConfig{
			Tick: TickPeriod,
		},
	}
}

// Load reads the config file at path on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.decode(filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) decode(ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	case ".toml":
		_, err := toml.Decode(string(data), c)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	if c.Game.Tick <= 0 {
		return fmt.Errorf("game.tick must be positive, got %v", c.Game.Tick)
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return fmt.Errorf("display cell size must be positive, got %dx%d",
			c.Display.CellWidth, c.Display.CellHeight)
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("ssh.idle_timeout must not be negative, got %v", c.SSH.IdleTimeout)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// OpenLogFile opens the configured log file for appending. With no file
// configured it returns io.Discard and a no-op closer.
func (c *Config) OpenLogFile() (io.WriteCloser, error) {
	if c.Log.File == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewLogger creates a logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           c.LogLevel(),
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}
