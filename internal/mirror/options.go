package mirror

import (
	"time"

	"github.com/cubelab/virtualcube/internal/recorder"
)

// Option configures Mirror behavior.
type Option func(*config)

type config struct {
	devicePrefix  string
	scanTimeout   time.Duration
	session       *recorder.Session
	flashOnSolved bool
}

func defaultConfig() *config {
	return &config{
		devicePrefix: "GoCube",
		scanTimeout:  30 * time.Second,
	}
}

// WithDevicePrefix sets the advertised name prefix used to recognize
// cubes during scanning. Matching is case-insensitive.
func WithDevicePrefix(prefix string) Option {
	return func(c *config) {
		c.devicePrefix = prefix
	}
}

// WithScanTimeout sets the maximum time to scan for devices.
func WithScanTimeout(d time.Duration) Option {
	return func(c *config) {
		c.scanTimeout = d
	}
}

// WithRecorder attaches a recording session. Every move received from
// the device is recorded to it.
func WithRecorder(s *recorder.Session) Option {
	return func(c *config) {
		c.session = s
	}
}

// WithFlashOnSolved flashes the cube backlight whenever the cube
// reaches the solved state.
func WithFlashOnSolved(enabled bool) Option {
	return func(c *config) {
		c.flashOnSolved = enabled
	}
}
