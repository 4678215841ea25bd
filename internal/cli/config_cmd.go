package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Write a config file with default settings. The file goes to the default location unless --config points elsewhere.`,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if err := cfg.SaveToFile(path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, exists := configPathInUse()
	if exists {
		fmt.Printf("Config file: %s\n", path)
	} else {
		fmt.Printf("Config file: %s (not present, showing defaults)\n", path)
	}
	fmt.Println()

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = "(default)"
	}
	fmt.Printf("database.path:       %s\n", dbPath)
	fmt.Printf("device.name_prefix:  %s\n", cfg.Device.NamePrefix)
	fmt.Printf("device.scan_timeout: %s\n", cfg.Device.ScanTimeout)
	fmt.Printf("render.color:        %t\n", cfg.Render.Color)

	return nil
}
