// Package viewport holds the interactive view state of a series display and
// the pure transitions that change it.
package viewport

import (
	"errors"
	"math"

	"git.sr.ht/~whereswaldon/seriesview/backend"
	"golang.org/x/exp/maps"
)

var ErrDegenerateInterval = errors.New("interval start must be before its end")

const (
	DefaultLimit = 6
	// MinIntervalFactor is the narrowest committed interval, as a fraction
	// of the domain width.
	MinIntervalFactor = 0.005
	// AmplitudeShrink and AmplitudeGrow are the factors behind the "-" and
	// "+" amplitude controls. The scale divides the signal, so a larger
	// factor draws smaller traces.
	AmplitudeShrink = 1.1
	AmplitudeGrow   = 0.9
)

// DefaultFraction is the part of the domain shown when a domain is first set.
var DefaultFraction = [2]float64{0.25, 0.75}

// Extent is the horizontal span of an interaction surface in its own units.
type Extent struct {
	Min, Max float64
}

// Normalize maps x into [0,1] across the extent, clamping positions outside
// it. A zero-width extent maps everything to 0.
func (e Extent) Normalize(x float64) float64 {
	if e.Max <= e.Min {
		return 0
	}
	return clampUnit((x - e.Min) / (e.Max - e.Min))
}

// DragState tracks an interval selection in progress. Anchor and Position
// are normalized to [0,1] across Extent.
type DragState struct {
	Dragging bool
	Anchor   float64
	Position float64
	Extent   Extent
}

// State is everything the series display needs to render a frame.
type State struct {
	Interval       backend.Interval
	Domain         backend.Interval
	AmplitudeScale float64
	OffsetIndex    int
	Limit          int
	Hidden         map[int]bool
	HiddenEpochs   map[int]bool
	Cursor         float64
	CursorSet      bool
	Drag           DragState
}

// NewState returns the state shown before any dataset has loaded.
func NewState(limit int) State {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return State{
		Interval:       backend.Interval{DefaultFraction[0], DefaultFraction[1]},
		Domain:         backend.Interval{0, 1},
		AmplitudeScale: 1,
		Limit:          limit,
		Hidden:         map[int]bool{},
		HiddenEpochs:   map[int]bool{},
	}
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s State) Clone() State {
	s.Hidden = maps.Clone(s.Hidden)
	s.HiddenEpochs = maps.Clone(s.HiddenEpochs)
	if s.Hidden == nil {
		s.Hidden = map[int]bool{}
	}
	if s.HiddenEpochs == nil {
		s.HiddenEpochs = map[int]bool{}
	}
	return s
}

// Selection returns the live interval under an in-progress drag, mapped
// through the domain. ok is false when no drag is active.
func (s State) Selection() (selection backend.Interval, ok bool) {
	if !s.Drag.Dragging {
		return backend.Interval{}, false
	}
	return s.selectionBetween(s.Drag.Anchor, s.Drag.Position), true
}

func (s State) selectionBetween(a, b float64) backend.Interval {
	lo, hi := min(a, b), max(a, b)
	w := s.Domain.Width()
	return backend.Interval{s.Domain[0] + lo*w, s.Domain[0] + hi*w}
}

// fit clamps iv into the domain and widens it to the minimum interval width
// around its centre.
func (s State) fit(iv backend.Interval) backend.Interval {
	d := s.Domain
	minWidth := MinIntervalFactor * d.Width()
	lo := clamp(iv[0], d[0], d[1])
	hi := clamp(iv[1], d[0], d[1])
	if hi-lo < minWidth {
		centre := (lo + hi) / 2
		lo, hi = centre-minWidth/2, centre+minWidth/2
		if lo < d[0] {
			lo, hi = d[0], d[0]+minWidth
		} else if hi > d[1] {
			lo, hi = d[1]-minWidth, d[1]
		}
	}
	return backend.Interval{lo, hi}
}

func validInterval(iv backend.Interval) bool {
	return !math.IsNaN(iv[0]) && !math.IsNaN(iv[1]) && !math.IsInf(iv[0], 0) && !math.IsInf(iv[1], 0) && iv[0] < iv[1]
}
