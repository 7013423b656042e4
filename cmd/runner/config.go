package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-dash/internal/config"
)

var (
	flagInit  bool
	flagForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default config",
	Long: `Print the default runner config as YAML.

With --init the config is written to ~/.arcade/configs/runner.yaml, where
'runner play' picks it up and watches it for changes.

Examples:
  runner config > my-runner.yaml
  runner config --init
  runner config --init --force`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagInit, "init", false, "Write the default config to the user config directory")
	configCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config with --init")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagInit {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	path, err := installConfig(config.UserConfigDir(), flagForce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

// installConfig writes the default config into dir and returns its path.
func installConfig(dir string, force bool) (string, error) {
	if dir == "" {
		return "", errors.New("cannot determine the user config directory")
	}
	path := filepath.Join(dir, "runner.yaml")

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		return "", fmt.Errorf("cannot write config: %w", err)
	}
	return path, nil
}
