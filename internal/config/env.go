package config

import (
	"fmt"
	"os"
	"time"
)

// Environment variables that override the config file.
const (
	EnvConfigPath = "SURVIVOR_CONFIG"
	EnvSSHHost    = "SSH_HOST"
	EnvSSHPort    = "SSH_PORT"
	EnvSSHHostKey = "SSH_HOST_KEY"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFile    = "LOG_FILE"
	EnvIdle       = "SSH_IDLE_TIMEOUT"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvDuration is GetEnv for durations. Unparseable values yield fallback.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// ApplyEnv overrides host settings from the environment.
func (c *Config) ApplyEnv() {
	c.SSH.Host = GetEnv(EnvSSHHost, c.SSH.Host)
	c.SSH.Port = GetEnv(EnvSSHPort, c.SSH.Port)
	c.SSH.HostKey = GetEnv(EnvSSHHostKey, c.SSH.HostKey)
	c.SSH.IdleTimeout = GetEnvDuration(EnvIdle, c.SSH.IdleTimeout)
	c.Log.Level = GetEnv(EnvLogLevel, c.Log.Level)
	c.Log.File = GetEnv(EnvLogFile, c.Log.File)
}

// LoadFromEnv loads the file named by SURVIVOR_CONFIG (defaults when unset)
// and applies environment overrides on top.
func LoadFromEnv() (*Config, error) {
	cfg, err := Load(GetEnv(EnvConfigPath, ""))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config after env overrides: %w", err)
	}
	return cfg, nil
}
