// Package iw retunes an interface by running "iw dev <iface> set channel <n>".
// It is the fallback for drivers or kernels where the netlink tuner is
// unavailable.
package iw

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bft-labs/probewatch/pkg/channel"
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Tuner shells out to iw.
type Tuner struct {
	iface  string
	binary string
	run    Runner
}

// New returns a tuner for iface. A nil runner uses ExecRunner.
func New(iface string, run Runner) *Tuner {
	if run == nil {
		run = ExecRunner
	}
	return &Tuner{iface: iface, binary: "iw", run: run}
}

// Available reports whether the iw binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("iw")
	return err == nil
}

// SetChannel runs iw for ch.
func (t *Tuner) SetChannel(ctx context.Context, ch int) error {
	if _, err := channel.Frequency(ch); err != nil {
		return err
	}
	out, err := t.run(ctx, t.binary, "dev", t.iface, "set", "channel", strconv.Itoa(ch))
	if err != nil {
		return fmt.Errorf("iw set channel %d: %w: %s", ch, err, strings.TrimSpace(string(out)))
	}
	return nil
}
