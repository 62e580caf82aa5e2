// flappy is a terminal Flappy Bird-style game.
//
// Usage:
//
//	flappy play      - Play in the terminal
//	flappy scores    - Show run history and high scores
//	flappy serve     - Start SSH server for remote play
//	flappy config    - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.flappy/scores.db)
//	--config <path>     - Load game tunables from a YAML file
//	--log-level <level> - debug, info, warn or error
//
// Every flag default can also be set with a FLAPPY_* environment variable.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

// env is read before any init so every command can seed its flag defaults
// from it. A bad value is reported once a command runs.
var env, envErr = loadEnvironment()

func loadEnvironment() (config.Environment, error) {
	e, err := config.LoadEnvironment()
	if err != nil {
		return config.Environment{
			DBPath:      "~/.flappy/scores.db",
			TickRate:    60,
			LogLevel:    "info",
			SSHAddr:     ":23234",
			IdleTimeout: 30 * time.Minute,
		}, err
	}
	return e, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - tap to fly through the pipes in your terminal",
	Long: `Flappy is a terminal take on the tap-to-fly obstacle game.

Available commands:
  play     - Play in this terminal
  scores   - View run history and high scores
  serve    - Start SSH server for remote play
  config   - Print the effective game configuration

Environment:
  FLAPPY_DB, FLAPPY_CONFIG, FLAPPY_FPS, FLAPPY_SEED, FLAPPY_LOG,
  FLAPPY_LOG_LEVEL, FLAPPY_SSH_ADDR, FLAPPY_HOST_KEY, FLAPPY_IDLE_TIMEOUT

Examples:
  flappy play
  flappy play --seed 42
  flappy serve --ssh :2222
  flappy scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if envErr != nil {
			return envErr
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
