// Package config provides YAML-based configuration loading for the 2048
// game, its score storage and the SSH server.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all configuration for t2048.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	UI      UIConfig      `yaml:"ui"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// GameConfig defines engine parameters.
type GameConfig struct {
	Seed         int64 `yaml:"seed"`          // 0 picks a time-based seed
	StrictStatus bool  `yaml:"strict_status"` // Reject moves outside playing status
}

// UIConfig defines terminal UI parameters.
type UIConfig struct {
	TickRate int `yaml:"tick_rate"` // View refreshes per second
}

// StorageConfig defines where scores and game records live.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig defines the SSH server parameters.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"` // 0 disables the timeout
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UI: UIConfig{
			TickRate: 10,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/scores.db",
		},
		SSH: SSHConfig{
			Address:     ":2048",
			HostKeyPath: ".ssh/t2048_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if c.UI.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("ui.tick_rate must be positive, got %d", c.UI.TickRate))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path must not be empty"))
	}
	if c.SSH.Address == "" {
		errs = append(errs, errors.New("ssh.address must not be empty"))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("ssh.idle_timeout must not be negative, got %s", c.SSH.IdleTimeout))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
