package domain

import (
	"fmt"
	"strings"
)

// FilterMask selects the packet types delivered by the capture source.
type FilterMask uint8

const (
	FilterMgmt FilterMask = 1 << iota
	FilterCtrl
	FilterData
	FilterMisc

	FilterAll = FilterMgmt | FilterCtrl | FilterData | FilterMisc
)

// DefaultFilter delivers management frames only.
const DefaultFilter = FilterMgmt

var filterNames = []struct {
	bit  FilterMask
	name string
}{
	{FilterMgmt, "mgmt"},
	{FilterCtrl, "ctrl"},
	{FilterData, "data"},
	{FilterMisc, "misc"},
}

// ParseFilterMask parses a comma separated list of mgmt, ctrl, data, misc
// or the single word "all". An empty string yields DefaultFilter.
func ParseFilterMask(s string) (FilterMask, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFilter, nil
	}
	if strings.EqualFold(s, "all") {
		return FilterAll, nil
	}
	var m FilterMask
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, f := range filterNames {
			if f.name == part {
				m |= f.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown packet type %q", part)
		}
	}
	if m == 0 {
		return DefaultFilter, nil
	}
	return m, nil
}

// Has reports whether every bit of o is set in m.
func (m FilterMask) Has(o FilterMask) bool { return m&o == o }

// String renders the mask the way ParseFilterMask reads it.
func (m FilterMask) String() string {
	if m == FilterAll {
		return "all"
	}
	var parts []string
	for _, f := range filterNames {
		if m.Has(f.bit) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, ",")
}
