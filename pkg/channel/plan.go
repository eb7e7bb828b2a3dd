package channel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Legal 2.4GHz channel numbers and the default hop range.
const (
	MinChannel        = 1
	MaxChannel        = 14
	DefaultMaxChannel = 13
)

var (
	ErrChannelOutOfRange = errors.New("channel out of range")
	ErrEmptyPlan         = errors.New("empty channel plan")
	ErrDuplicateChannel  = errors.New("duplicate channel")
)

// Plan is an ordered, non-empty list of distinct legal channels.
// The zero value is not usable; build one with NewPlan or NewRangePlan.
type Plan struct {
	channels []int
}

// NewPlan returns a plan hopping through channels in the given order.
func NewPlan(channels ...int) (Plan, error) {
	if len(channels) == 0 {
		return Plan{}, ErrEmptyPlan
	}
	seen := make(map[int]bool, len(channels))
	for _, ch := range channels {
		if ch < MinChannel || ch > MaxChannel {
			return Plan{}, fmt.Errorf("%w: %d", ErrChannelOutOfRange, ch)
		}
		if seen[ch] {
			return Plan{}, fmt.Errorf("%w: %d", ErrDuplicateChannel, ch)
		}
		seen[ch] = true
	}
	return Plan{channels: append([]int(nil), channels...)}, nil
}

// NewRangePlan returns the plan lo, lo+1, ..., hi.
func NewRangePlan(lo, hi int) (Plan, error) {
	if lo < MinChannel || hi > MaxChannel {
		return Plan{}, fmt.Errorf("%w: %d..%d", ErrChannelOutOfRange, lo, hi)
	}
	if lo > hi {
		return Plan{}, fmt.Errorf("%w: %d..%d", ErrEmptyPlan, lo, hi)
	}
	chs := make([]int, 0, hi-lo+1)
	for ch := lo; ch <= hi; ch++ {
		chs = append(chs, ch)
	}
	return Plan{channels: chs}, nil
}

// DefaultPlan hops 1 through 13.
func DefaultPlan() Plan {
	p, _ := NewRangePlan(MinChannel, DefaultMaxChannel)
	return p
}

// ParseList parses a comma separated hop order such as "1,6,11".
func ParseList(s string) (Plan, error) {
	var chs []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		ch, err := strconv.Atoi(f)
		if err != nil {
			return Plan{}, fmt.Errorf("invalid channel %q: %w", f, err)
		}
		chs = append(chs, ch)
	}
	return NewPlan(chs...)
}

// Len returns the number of channels in the plan.
func (p Plan) Len() int { return len(p.channels) }

// At returns the channel at position i.
func (p Plan) At(i int) int { return p.channels[i] }

// First returns the initial channel.
func (p Plan) First() int { return p.channels[0] }

// Channels returns a copy of the hop order.
func (p Plan) Channels() []int { return append([]int(nil), p.channels...) }

// Contains reports whether ch is part of the plan.
func (p Plan) Contains(ch int) bool {
	for _, c := range p.channels {
		if c == ch {
			return true
		}
	}
	return false
}

// String renders the plan as "1,2,3".
func (p Plan) String() string {
	var b strings.Builder
	for i, ch := range p.channels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(ch))
	}
	return b.String()
}

// Frequency returns the centre frequency in MHz of a 2.4GHz channel.
func Frequency(ch int) (int, error) {
	switch {
	case ch == 14:
		return 2484, nil
	case ch >= MinChannel && ch < 14:
		return 2407 + 5*ch, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrChannelOutOfRange, ch)
	}
}

// ChannelFromFrequency maps a centre frequency in MHz back to its channel
// number. Both the 2.4GHz and 5GHz bands are recognised.
func ChannelFromFrequency(mhz int) (int, bool) {
	switch {
	case mhz == 2484:
		return 14, true
	case mhz >= 2412 && mhz <= 2472 && (mhz-2407)%5 == 0:
		return (mhz - 2407) / 5, true
	case mhz >= 5160 && mhz <= 5885 && (mhz-5000)%5 == 0:
		return (mhz - 5000) / 5, true
	default:
		return 0, false
	}
}
