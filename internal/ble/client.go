// Package ble provides low-level BLE communication with the smart cube.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cubelab/virtualcube/internal/wire"
	"tinygo.org/x/bluetooth"
)

// Sentinel errors for the ble package.
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
)

// BLE UUIDs
var (
	serviceUUID = bluetooth.NewUUID(mustParseUUID(wire.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(mustParseUUID(wire.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(mustParseUUID(wire.RxCharUUID))
)

func mustParseUUID(s string) [16]byte {
	var uuid [16]byte
	clean := ""
	for _, c := range s {
		if c != '-' {
			clean += string(c)
		}
	}
	for i := 0; i < 16; i++ {
		var b byte
		fmt.Sscanf(clean[i*2:i*2+2], "%02x", &b)
		uuid[i] = b
	}
	return uuid
}

// ScanResult represents a discovered cube.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the BLE connection to one cube.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	txChar  bluetooth.DeviceCharacteristic
	rxChar  bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	deviceUUID string
	battery    int

	onMessage    func(*wire.Message)
	onDisconnect func()
}

// NewClient creates a BLE client over the default adapter.
func NewClient() (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	c := &Client{
		adapter: adapter,
		battery: -1,
	}

	adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		if connected {
			return
		}
		c.mu.Lock()
		wasConnected := c.connected
		c.connected = false
		cb := c.onDisconnect
		c.mu.Unlock()

		if wasConnected && cb != nil {
			cb()
		}
	})

	return c, nil
}

// SetMessageCallback sets the callback for incoming messages.
func (c *Client) SetMessageCallback(cb func(*wire.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// SetDisconnectCallback sets the callback for disconnection events.
func (c *Client) SetDisconnectCallback(cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDisconnect = cb
}

// Scan scans for cubes whose advertised name starts with prefix
// (case-insensitive), until the timeout or context expires.
func (c *Client) Scan(ctx context.Context, prefix string, timeout time.Duration) ([]ScanResult, error) {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return nil, ErrAlreadyConnected
	}
	c.mu.RUnlock()

	prefix = strings.ToLower(prefix)

	var results []ScanResult
	var mu sync.Mutex
	seen := make(map[string]bool)

	done := make(chan struct{})

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			if seen[addr] {
				mu.Unlock()
				return
			}
			seen[addr] = true
			mu.Unlock()

			if strings.HasPrefix(strings.ToLower(name), prefix) {
				mu.Lock()
				results = append(results, ScanResult{
					Name:    name,
					UUID:    addr,
					RSSI:    result.RSSI,
					Address: result.Address,
				})
				mu.Unlock()
			}
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	<-done

	return results, nil
}

// Connect connects to a cube by its address string. It scans until the
// device shows up, the timeout passes, or the context expires.
func (c *Client) Connect(ctx context.Context, deviceUUID string, timeout time.Duration) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	var targetAddr bluetooth.Address
	var targetName string
	found := make(chan struct{})
	var foundOnce sync.Once

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.Address.String() == deviceUUID {
				targetAddr = result.Address
				targetName = result.LocalName()
				foundOnce.Do(func() {
					close(found)
				})
			}
		})
	}()

	select {
	case <-found:
		c.adapter.StopScan()
	case <-time.After(timeout):
		c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		return ctx.Err()
	}

	return c.setup(targetAddr, targetName, deviceUUID)
}

// ConnectToResult connects directly to a device from a scan result.
func (c *Client) ConnectToResult(ctx context.Context, result ScanResult) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	return c.setup(result.Address, result.Name, result.UUID)
}

// setup connects to the address, discovers the cube service and
// characteristics, and subscribes to notifications.
func (c *Client) setup(addr bluetooth.Address, name, uuid string) error {
	device, err := c.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("cube service not found on %s", name)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		if ch.UUID() == txCharUUID {
			txChar = ch
		} else if ch.UUID() == rxCharUUID {
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.txChar = txChar
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = name
	c.deviceUUID = uuid
	c.mu.Unlock()

	c.RequestBattery()

	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceUUID = ""
	c.battery = -1

	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// DeviceUUID returns the connected device address.
func (c *Client) DeviceUUID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceUUID
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand sends a command frame to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := wire.BuildCommand(cmd)
	_, err := c.rxChar.WriteWithoutResponse(data)
	if err != nil {
		_, err = c.rxChar.Write(data)
	}
	return err
}

// RequestBattery requests the battery level from the cube.
func (c *Client) RequestBattery() error {
	return c.SendCommand(wire.CmdRequestBattery)
}

// RequestState requests a full facelet dump from the cube.
func (c *Client) RequestState() error {
	return c.SendCommand(wire.CmdRequestState)
}

// RequestCubeType requests the cube type from the cube.
func (c *Client) RequestCubeType() error {
	return c.SendCommand(wire.CmdRequestCubeType)
}

// ResetSolved tells the cube to treat its current state as solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(wire.CmdResetSolved)
}

// FlashBacklight flashes the cube backlight.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(wire.CmdFlashBacklight)
}

// ToggleBacklight toggles the cube backlight on/off.
func (c *Client) ToggleBacklight() error {
	return c.SendCommand(wire.CmdToggleBacklight)
}

// EnableOrientation enables orientation notifications on the cube.
func (c *Client) EnableOrientation() error {
	return c.SendCommand(wire.CmdEnableOrientation)
}

// DisableOrientation disables orientation notifications on the cube.
func (c *Client) DisableOrientation() error {
	return c.SendCommand(wire.CmdDisableOrientation)
}

// handleNotification handles incoming BLE notifications.
func (c *Client) handleNotification(data []byte) {
	msg, err := wire.ParseFrame(data)
	if err != nil {
		return
	}

	// Battery updates are also cached on the client.
	if msg.Type == wire.MsgTypeBattery {
		if battery, err := wire.DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = battery.Level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()

	if cb != nil {
		cb(msg)
	}
}
