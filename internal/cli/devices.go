package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube/internal/mirror"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Scan for nearby smart cubes",
	Long:  `Scan for smart cubes over Bluetooth Low Energy and list what was found.`,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Scanning for %s devices (%s)...\n", cfg.Device.NamePrefix, cfg.Device.ScanTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Device.ScanTimeout)
	defer cancel()

	devices, err := mirror.Scan(ctx,
		mirror.WithDevicePrefix(cfg.Device.NamePrefix),
		mirror.WithScanTimeout(cfg.Device.ScanTimeout),
	)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Ensure the cube is powered on")
		fmt.Println("  - Move the cube to wake it up")
		fmt.Println("  - Check that Bluetooth is enabled")
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(devices))
	for _, d := range devices {
		fmt.Printf("  - %s (UUID: %s, RSSI: %d)\n", d.Name, d.UUID, d.RSSI)
	}

	return nil
}
