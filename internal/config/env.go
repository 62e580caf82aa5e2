package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read by LoadEnvironment.
const EnvPrefix = "FLAPPY"

// Environment holds process-level settings. They seed the CLI flag defaults,
// so a flag given on the command line always wins.
type Environment struct {
	DBPath      string        `envconfig:"DB" default:"~/.flappy/scores.db"`
	ConfigPath  string        `envconfig:"CONFIG"`
	TickRate    int           `envconfig:"FPS" default:"60"`
	Seed        int64         `envconfig:"SEED" default:"0"`
	LogPath     string        `envconfig:"LOG" default:"~/.flappy/flappy.log"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	SSHAddr     string        `envconfig:"SSH_ADDR" default:":23234"`
	HostKeyPath string        `envconfig:"HOST_KEY"`
	IdleTimeout time.Duration `envconfig:"IDLE_TIMEOUT" default:"30m"`
}

// LoadEnvironment reads FLAPPY_* variables.
func LoadEnvironment() (Environment, error) {
	var env Environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Environment{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if env.TickRate <= 0 {
		return Environment{}, fmt.Errorf("%s_FPS must be positive, got %d", EnvPrefix, env.TickRate)
	}
	return env, nil
}
