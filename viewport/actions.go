package viewport

import (
	"math"

	"git.sr.ht/~whereswaldon/seriesview/backend"
)

// Action is a request to change the viewport State.
type Action interface {
	isAction()
}

type (
	// SetDomain replaces the full time domain and shows Fraction of it, or
	// DefaultFraction when Fraction is zero.
	SetDomain struct {
		Domain   backend.Interval
		Fraction [2]float64
	}
	// ExtendDomain replaces the domain but keeps the visible interval, as
	// when a file that is still being written grows.
	ExtendDomain struct {
		Domain backend.Interval
	}
	// SetInterval shows Interval, clamped into the domain.
	SetInterval struct {
		Interval backend.Interval
	}
	// ResetInterval zooms out to the whole domain.
	ResetInterval struct{}
	// StartDrag begins an interval selection at X within Extent.
	StartDrag struct {
		X      float64
		Extent Extent
	}
	// ContinueDrag moves the free end of the selection.
	ContinueDrag struct {
		X float64
	}
	// EndDrag commits the selection ending at X.
	EndDrag struct {
		X float64
	}
	SetCursor struct {
		Time float64
	}
	ClearCursor struct{}
	// SetAmplitudeScale multiplies the amplitude scale by Factor.
	SetAmplitudeScale struct {
		Factor float64
	}
	ResetAmplitudeScale struct{}
	// SetOffset jumps the channel page to Offset out of Total channels.
	SetOffset struct {
		Offset, Total int
	}
	// StepOffset moves the channel page by Step out of Total channels.
	StepOffset struct {
		Step  Step
		Total int
	}
	ToggleChannel struct {
		Index int
	}
	ToggleEpoch struct {
		Index int
	}
	// Zoom scales the interval width by Factor, keeping the time Anchor at
	// the same place on screen.
	Zoom struct {
		Anchor, Factor float64
	}
	// Pan shifts the interval by Delta seconds without leaving the domain.
	Pan struct {
		Delta float64
	}
)

func (SetDomain) isAction()           {}
func (ExtendDomain) isAction()        {}
func (SetInterval) isAction()         {}
func (ResetInterval) isAction()       {}
func (StartDrag) isAction()           {}
func (ContinueDrag) isAction()        {}
func (EndDrag) isAction()             {}
func (SetCursor) isAction()           {}
func (ClearCursor) isAction()         {}
func (SetAmplitudeScale) isAction()   {}
func (ResetAmplitudeScale) isAction() {}
func (SetOffset) isAction()           {}
func (StepOffset) isAction()          {}
func (ToggleChannel) isAction()       {}
func (ToggleEpoch) isAction()         {}
func (Zoom) isAction()                {}
func (Pan) isAction()                 {}

// Validate reports whether a can be applied to s. Only actions that would
// install a degenerate interval are rejected.
func Validate(s State, a Action) error {
	switch a := a.(type) {
	case SetDomain:
		if !validInterval(a.Domain) {
			return ErrDegenerateInterval
		}
	case ExtendDomain:
		if !validInterval(a.Domain) {
			return ErrDegenerateInterval
		}
	case SetInterval:
		if !validInterval(a.Interval) {
			return ErrDegenerateInterval
		}
	}
	return nil
}

// Reduce returns the state that results from applying a to s. It never
// modifies s. Invalid actions leave the state unchanged.
func Reduce(s State, a Action) State {
	if Validate(s, a) != nil {
		return s
	}
	switch a := a.(type) {
	case SetDomain:
		fraction := a.Fraction
		if fraction == ([2]float64{}) {
			fraction = DefaultFraction
		}
		s.Domain = a.Domain
		w := a.Domain.Width()
		s.Interval = s.fit(backend.Interval{a.Domain[0] + fraction[0]*w, a.Domain[0] + fraction[1]*w})
		s.Drag = DragState{}
	case ExtendDomain:
		s.Domain = a.Domain
		s.Interval = s.fit(s.Interval)
	case SetInterval:
		s.Interval = s.fit(a.Interval)
	case ResetInterval:
		s.Interval = s.Domain
	case StartDrag:
		x := a.Extent.Normalize(a.X)
		s.Drag = DragState{Dragging: true, Anchor: x, Position: x, Extent: a.Extent}
	case ContinueDrag:
		if s.Drag.Dragging {
			s.Drag.Position = s.Drag.Extent.Normalize(a.X)
		}
	case EndDrag:
		if s.Drag.Dragging {
			end := s.Drag.Extent.Normalize(a.X)
			s.Interval = s.fit(s.selectionBetween(s.Drag.Anchor, end))
			s.Drag = DragState{}
		}
	case SetCursor:
		s.Cursor, s.CursorSet = a.Time, true
	case ClearCursor:
		s.Cursor, s.CursorSet = 0, false
	case SetAmplitudeScale:
		if a.Factor > 0 && !math.IsInf(a.Factor, 0) {
			s.AmplitudeScale *= a.Factor
		}
	case ResetAmplitudeScale:
		s.AmplitudeScale = 1
	case SetOffset:
		s.OffsetIndex = ClampOffset(a.Offset, a.Total, s.Limit)
	case StepOffset:
		s.OffsetIndex = a.Step.Apply(s.OffsetIndex, a.Total, s.Limit)
	case ToggleChannel:
		s = s.Clone()
		s.Hidden[a.Index] = !s.Hidden[a.Index]
		if !s.Hidden[a.Index] {
			delete(s.Hidden, a.Index)
		}
	case ToggleEpoch:
		s = s.Clone()
		s.HiddenEpochs[a.Index] = !s.HiddenEpochs[a.Index]
		if !s.HiddenEpochs[a.Index] {
			delete(s.HiddenEpochs, a.Index)
		}
	case Zoom:
		if a.Factor > 0 && !math.IsInf(a.Factor, 0) {
			s.Interval = s.fit(backend.Interval{
				a.Anchor + (s.Interval[0]-a.Anchor)*a.Factor,
				a.Anchor + (s.Interval[1]-a.Anchor)*a.Factor,
			})
		}
	case Pan:
		w := s.Interval.Width()
		lo := clamp(s.Interval[0]+a.Delta, s.Domain[0], max(s.Domain[0], s.Domain[1]-w))
		s.Interval = s.fit(backend.Interval{lo, lo + w})
	}
	return s
}
