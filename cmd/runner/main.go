// runner is an endless side-scrolling runner for the terminal with a shared
// leaderboard.
//
// Usage:
//
//	runner play              - Play a round (needs a name and an email)
//	runner scores            - Show the top 10 leaderboard
//	runner serve             - Start SSH server for remote play
//	runner config            - Print or install the default config
//
// Global flags:
//
//	--fps <rate>    - Set refresh rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
//
// A .env file in the working directory may set RUNNER_NAME, RUNNER_EMAIL
// and RUNNER_DB.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultDBPath = "~/.arcade/scores.db"

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Dino Dash - an endless runner in your terminal",
	Long: `Dino Dash is a side-scrolling runner played in the terminal.
Jump over obstacles, grab power-ups and climb the leaderboard.

Available commands:
  play     - Play a round
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  config   - Print or install the default config

Examples:
  runner play --name Ada --email ada@example.com
  runner play --difficulty hard
  runner scores
  runner serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEnv reads .env if present. Flags given on the command line win over
// the environment.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	if !cmd.Flags().Changed("db") {
		if v := os.Getenv("RUNNER_DB"); v != "" {
			flagDBPath = v
		}
	}
	return nil
}

// envDefault returns the flag value, falling back to an environment variable.
func envDefault(cmd *cobra.Command, flag, value, env string) string {
	if cmd.Flags().Changed(flag) || value != "" {
		return value
	}
	return os.Getenv(env)
}
