// Package mirror keeps an in-memory cube in sync with a physical smart
// cube over Bluetooth. Rotation notifications from the device are
// decoded and applied to a tracker, so the virtual cube always shows
// what the hands are doing.
package mirror

import (
	"context"
	"sync"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/ble"
	"github.com/cubelab/virtualcube/internal/wire"
)

// Device represents a discovered cube.
// Devices are returned by Scan and can be passed to Connect.
type Device struct {
	Name string // Advertised name (e.g., "GoCube_A1B2")
	UUID string // Device UUID for connection
	RSSI int16  // Signal strength in dBm

	result ble.ScanResult
}

// Orientation describes which faces point up and toward the solver.
type Orientation struct {
	Up    virtualcube.Color
	Front virtualcube.Color
}

// Mirror represents a connected smart cube. It wraps the BLE client and
// keeps a tracker in lockstep with the physical cube.
//
// Create a Mirror with Connect or ConnectFirst:
//
//	m, err := mirror.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	m.OnMove(func(mv virtualcube.Move) {
//	    fmt.Println("Move:", mv.Notation())
//	})
type Mirror struct {
	client *ble.Client
	device Device
	config *config

	mu      sync.RWMutex
	tracker *virtualcube.Tracker

	onMove        func(virtualcube.Move)
	onSolved      func()
	onBattery     func(int)
	onOrientation func(Orientation)
	onDisconnect  func()
}

// Scan discovers nearby cubes via Bluetooth Low Energy. Returns all
// matching devices found within the scan timeout.
func Scan(ctx context.Context, opts ...Option) ([]Device, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient()
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, cfg.devicePrefix, cfg.scanTimeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{
			Name:   r.Name,
			UUID:   r.UUID,
			RSSI:   r.RSSI,
			result: r,
		}
	}

	return devices, nil
}

// Connect connects to a specific cube.
func Connect(ctx context.Context, device Device, opts ...Option) (*Mirror, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient()
	if err != nil {
		return nil, err
	}

	if device.result.UUID != "" {
		err = client.ConnectToResult(ctx, device.result)
	} else {
		err = client.Connect(ctx, device.UUID, cfg.scanTimeout)
	}
	if err != nil {
		return nil, err
	}

	m := &Mirror{
		client:  client,
		device:  device,
		config:  cfg,
		tracker: virtualcube.NewTracker(),
	}
	m.wireTracker(m.tracker)

	client.SetMessageCallback(m.handleMessage)
	client.SetDisconnectCallback(m.dispatchDisconnect)

	return m, nil
}

// ConnectFirst scans and connects to the first cube found.
func ConnectFirst(ctx context.Context, opts ...Option) (*Mirror, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	devices, err := Scan(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ble.ErrDeviceNotFound
	}

	return Connect(ctx, devices[0], opts...)
}

// Close disconnects from the cube and releases resources.
func (m *Mirror) Close() error {
	return m.client.Disconnect()
}

// IsConnected returns true while the cube is connected.
func (m *Mirror) IsConnected() bool {
	return m.client.IsConnected()
}

// DeviceName returns the connected device name.
func (m *Mirror) DeviceName() string {
	return m.client.DeviceName()
}

// DeviceUUID returns the connected device UUID.
func (m *Mirror) DeviceUUID() string {
	return m.client.DeviceUUID()
}

// Battery returns the last known battery level (0-100), or -1 if unknown.
func (m *Mirror) Battery() int {
	return m.client.Battery()
}

// Event callbacks

// OnMove sets a callback that fires for each move received from the cube.
func (m *Mirror) OnMove(cb func(virtualcube.Move)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMove = cb
}

// OnSolved sets a callback that fires when the cube becomes solved.
func (m *Mirror) OnSolved(cb func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSolved = cb
}

// OnBattery sets a callback for battery level updates.
func (m *Mirror) OnBattery(cb func(int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onBattery = cb
}

// OnOrientationChange sets a callback for cube orientation changes.
func (m *Mirror) OnOrientationChange(cb func(Orientation)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOrientation = cb
}

// OnDisconnect sets a callback for disconnection events.
func (m *Mirror) OnDisconnect(cb func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisconnect = cb
}

// State access

// Cube returns a copy of the mirrored cube state.
func (m *Mirror) Cube() *virtualcube.Cube {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tracker.Cube()
}

// Moves returns the move history since connection or the last sync.
func (m *Mirror) Moves() []virtualcube.Move {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tracker.History()
}

// MoveCount returns the number of moves received.
func (m *Mirror) MoveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tracker.MoveCount()
}

// IsSolved returns true if the mirrored cube is currently solved.
func (m *Mirror) IsSolved() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tracker.IsSolved()
}

// Reset resets the mirrored cube to solved and clears the history.
// Does not affect the physical cube.
func (m *Mirror) Reset() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.tracker.Reset()
}

// Control

// RequestBattery asks the cube to report its battery level.
func (m *Mirror) RequestBattery() error {
	return m.client.RequestBattery()
}

// SyncFromDevice asks the cube for its full sticker state. When the
// response arrives the mirrored cube is replaced and the move history
// cleared.
func (m *Mirror) SyncFromDevice() error {
	return m.client.RequestState()
}

// MarkSolved tells the cube firmware to treat its current state as solved.
func (m *Mirror) MarkSolved() error {
	return m.client.ResetSolved()
}

// FlashBacklight flashes the cube backlight.
func (m *Mirror) FlashBacklight() error {
	return m.client.FlashBacklight()
}

// EnableOrientation enables orientation notifications.
func (m *Mirror) EnableOrientation() error {
	return m.client.EnableOrientation()
}

// DisableOrientation disables orientation notifications.
func (m *Mirror) DisableOrientation() error {
	return m.client.DisableOrientation()
}

// Internal message handling

// wireTracker points the tracker's callbacks at the mirror dispatchers.
func (m *Mirror) wireTracker(t *virtualcube.Tracker) {
	t.SetMoveCallback(m.dispatchMove)
	t.SetSolvedCallback(m.dispatchSolved)
}

func (m *Mirror) handleMessage(msg *wire.Message) {
	switch msg.Type {
	case wire.MsgTypeRotation:
		m.handleRotation(msg)
	case wire.MsgTypeBattery:
		m.handleBattery(msg)
	case wire.MsgTypeOrientation:
		m.handleOrientation(msg)
	case wire.MsgTypeState:
		m.handleState(msg)
	}
}

func (m *Mirror) handleRotation(msg *wire.Message) {
	events, err := wire.DecodeRotation(msg.Payload)
	if err != nil {
		return
	}

	m.mu.RLock()
	tracker := m.tracker
	m.mu.RUnlock()

	for _, ev := range events {
		// The decoder only emits valid faces, so Apply cannot fail here.
		_ = tracker.Apply(ev.Move())
	}
}

func (m *Mirror) handleBattery(msg *wire.Message) {
	battery, err := wire.DecodeBattery(msg.Payload)
	if err != nil {
		return
	}

	m.mu.RLock()
	cb := m.onBattery
	m.mu.RUnlock()

	if cb != nil {
		cb(battery.Level)
	}
}

func (m *Mirror) handleOrientation(msg *wire.Message) {
	orient, err := wire.DecodeOrientation(msg.Payload)
	if err != nil {
		return
	}

	m.mu.RLock()
	cb := m.onOrientation
	m.mu.RUnlock()

	if cb != nil {
		cb(Orientation{Up: orient.Up, Front: orient.Front})
	}
}

func (m *Mirror) handleState(msg *wire.Message) {
	state, err := wire.DecodeState(msg.Payload)
	if err != nil {
		return
	}
	cube, err := virtualcube.RestoreCube(state)
	if err != nil {
		return
	}

	tracker := virtualcube.NewTrackerFrom(cube)
	m.wireTracker(tracker)

	m.mu.Lock()
	m.tracker = tracker
	m.mu.Unlock()
}

func (m *Mirror) dispatchMove(move virtualcube.Move) {
	m.mu.RLock()
	sess := m.config.session
	cb := m.onMove
	m.mu.RUnlock()

	if sess != nil {
		_ = sess.Record(move)
	}
	if cb != nil {
		cb(move)
	}
}

func (m *Mirror) dispatchSolved() {
	m.mu.RLock()
	flash := m.config.flashOnSolved
	cb := m.onSolved
	m.mu.RUnlock()

	if flash {
		_ = m.client.FlashBacklight()
	}
	if cb != nil {
		cb()
	}
}

func (m *Mirror) dispatchDisconnect() {
	m.mu.RLock()
	cb := m.onDisconnect
	m.mu.RUnlock()

	if cb != nil {
		cb()
	}
}
