// Package cli implements the command-line interface for virtualcube.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube/internal/config"
	"github.com/cubelab/virtualcube/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	configPath string
	noColor    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "virtualcube",
	Short: "Virtual Rubik's cube",
	Long: `Virtual Rubik's cube - an in-memory 3x3x3 cube you can turn from the
command line, mirror from a Bluetooth smart cube, and record move by move.

Apply move sequences and inspect the resulting state, explore interactively,
or connect a smart cube and watch the virtual one follow your hands.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.virtualcube/virtualcube.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.virtualcube/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig loads the active configuration, honoring the global flags.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if noColor {
		cfg.Render.Color = false
	}

	return cfg, nil
}

// openDB opens the database named by the flags and config.
func openDB() (*storage.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Database.Path != "" {
		return storage.Open(cfg.Database.Path)
	}
	return storage.OpenDefault()
}
