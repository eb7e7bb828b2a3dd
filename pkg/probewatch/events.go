package probewatch

import (
	"github.com/bft-labs/probewatch/internal/metrics"
	"github.com/bft-labs/probewatch/pkg/channel"
	"github.com/bft-labs/probewatch/pkg/lifecycle"
)

// State is the lifecycle state of a Sniffer.
type State = lifecycle.State

// Lifecycle states.
const (
	StateStopped  = lifecycle.StateStopped
	StateStarting = lifecycle.StateStarting
	StateRunning  = lifecycle.StateRunning
	StateStopping = lifecycle.StateStopping
	StateCrashed  = lifecycle.StateCrashed
)

// StateChangeEvent is emitted on every lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// ChannelChangeEvent is emitted after the radio has been retuned.
type ChannelChangeEvent struct {
	Channel   int
	Frequency int // MHz
}

// TuneErrorEvent is emitted when a retune fails. The scheduler moves on
// to the next channel at the next tick.
type TuneErrorEvent struct {
	Channel int
	Error   error
}

// EventHandler receives sniffer notifications. Methods are called
// synchronously from the lifecycle and scheduler goroutines and must
// return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnChannelChange(event ChannelChangeEvent)
	OnTuneError(event TuneErrorEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only the events you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)     {}
func (BaseEventHandler) OnChannelChange(ChannelChangeEvent) {}
func (BaseEventHandler) OnTuneError(TuneErrorEvent)         {}

// eventBridge adapts the handler and the metrics recorder to the
// lifecycle and scheduler observer interfaces.
type eventBridge struct {
	handler  EventHandler
	recorder *metrics.Recorder
}

func (e *eventBridge) OnStateChange(previous, current lifecycle.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}

func (e *eventBridge) ChannelChanged(ch int) {
	e.recorder.ChannelChanged(ch)
	if e.handler == nil {
		return
	}
	mhz, _ := channel.Frequency(ch)
	e.handler.OnChannelChange(ChannelChangeEvent{Channel: ch, Frequency: mhz})
}

func (e *eventBridge) TuneFailed(ch int, err error) {
	e.recorder.TuneFailed(ch, err)
	if e.handler == nil {
		return
	}
	e.handler.OnTuneError(TuneErrorEvent{Channel: ch, Error: err})
}

var (
	_ lifecycle.EventEmitter = (*eventBridge)(nil)
	_ channel.Observer       = (*eventBridge)(nil)
)
