// Wire protocol dump - connects to a smart cube and prints every
// decoded message. Useful when checking what a cube actually sends.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cubelab/virtualcube/internal/ble"
	"github.com/cubelab/virtualcube/internal/wire"
)

func main() {
	prefix := flag.String("prefix", "GoCube", "device name prefix to scan for")
	timeout := flag.Duration("timeout", 30*time.Second, "scan timeout")
	raw := flag.Bool("raw", false, "also print raw payload bytes as hex")
	flag.Parse()

	client, err := ble.NewClient()
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scanning for %s devices (%s)...\n", *prefix, *timeout)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	results, err := client.Scan(ctx, *prefix, *timeout)
	if err != nil {
		fmt.Printf("ERROR: scan failed: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("No devices found.")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Make sure the cube is powered on")
		fmt.Println("  - Move the cube to wake it up")
		fmt.Println("  - Disconnect it from any phone app first")
		os.Exit(1)
	}

	target := results[0]
	fmt.Printf("Connecting to %s (%s)...\n", target.Name, target.UUID)

	client.SetMessageCallback(printMessage(*raw))
	client.SetDisconnectCallback(func() {
		fmt.Println("\nDevice disconnected.")
		os.Exit(0)
	})

	if err := client.ConnectToResult(ctx, target); err != nil {
		fmt.Printf("ERROR: connect failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect()

	fmt.Println("Connected. Requesting cube state and type...")
	_ = client.RequestState()
	_ = client.RequestCubeType()

	fmt.Println()
	fmt.Println("Rotate the cube to see messages. Press Ctrl+C to exit.")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nDisconnecting...")
}

func printMessage(raw bool) func(*wire.Message) {
	return func(msg *wire.Message) {
		fmt.Printf("[%s]", wire.MessageTypeName(msg.Type))
		if raw {
			fmt.Printf(" %s", hex.EncodeToString(msg.Payload))
		}

		switch msg.Type {
		case wire.MsgTypeRotation:
			events, err := wire.DecodeRotation(msg.Payload)
			if err != nil {
				fmt.Printf(" decode error: %v\n", err)
				return
			}
			parts := make([]string, len(events))
			for i, ev := range events {
				parts[i] = fmt.Sprintf("%s (%s)", ev.Move().Notation(), ev.Move().Describe())
			}
			fmt.Printf(" %s\n", strings.Join(parts, ", "))

		case wire.MsgTypeBattery:
			ev, err := wire.DecodeBattery(msg.Payload)
			if err != nil {
				fmt.Printf(" decode error: %v\n", err)
				return
			}
			fmt.Printf(" %d%%\n", ev.Level)

		case wire.MsgTypeState:
			stickers, err := wire.DecodeState(msg.Payload)
			if err != nil {
				fmt.Printf(" decode error: %v\n", err)
				return
			}
			var b strings.Builder
			for _, face := range stickers {
				for _, c := range face {
					b.WriteString(c.String())
				}
			}
			fmt.Printf(" %s\n", b.String())

		case wire.MsgTypeOrientation:
			ev, err := wire.DecodeOrientation(msg.Payload)
			if err != nil {
				fmt.Printf(" decode error: %v\n", err)
				return
			}
			fmt.Printf(" up=%s front=%s\n", ev.Up.Name(), ev.Front.Name())

		case wire.MsgTypeCubeType:
			ev, err := wire.DecodeCubeType(msg.Payload)
			if err != nil {
				fmt.Printf(" decode error: %v\n", err)
				return
			}
			fmt.Printf(" %s\n", ev.TypeName)

		default:
			fmt.Println()
		}
	}
}
