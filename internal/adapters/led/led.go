// Package led provides liveness indicators toggled on every channel hop.
package led

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bft-labs/probewatch/pkg/log"
)

// DefaultRoot is where the kernel exposes LED class devices.
const DefaultRoot = "/sys/class/leds"

// Sysfs drives an LED through its brightness attribute.
type Sysfs struct {
	path   string
	logger log.Logger

	mu     sync.Mutex
	on     bool
	failed bool
}

// NewSysfs returns an indicator for the LED called name under root.
// An empty root means DefaultRoot. The LED must exist.
func NewSysfs(root, name string, logger log.Logger) (*Sysfs, error) {
	if root == "" {
		root = DefaultRoot
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	p := filepath.Join(root, name, "brightness")
	if _, err := os.Stat(p); err != nil {
		return nil, fmt.Errorf("led %s: %w", name, err)
	}
	return &Sysfs{path: p, logger: logger}, nil
}

// Toggle flips the LED. Only the first write failure is logged.
func (s *Sysfs) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.on = !s.on
	v := "0"
	if s.on {
		v = "1"
	}
	if err := os.WriteFile(s.path, []byte(v), 0o644); err != nil && !s.failed {
		s.failed = true
		s.logger.Warn("led write failed", log.String("path", s.path), log.Err(err))
	}
}

// On reports the last state written.
func (s *Sysfs) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

// Heartbeat logs at debug level instead of driving hardware.
type Heartbeat struct {
	logger log.Logger

	mu sync.Mutex
	on bool
}

// NewHeartbeat returns a log-only indicator.
func NewHeartbeat(logger log.Logger) *Heartbeat {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Heartbeat{logger: logger}
}

// Toggle flips and logs the state.
func (h *Heartbeat) Toggle() {
	h.mu.Lock()
	h.on = !h.on
	on := h.on
	h.mu.Unlock()
	h.logger.Debug("heartbeat", log.Bool("on", on))
}
