package main

import (
	"image"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/scale"
	"git.sr.ht/~whereswaldon/seriesview/scene"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
)

const defaultZoomStep = 1.1

// SeriesView draws the channel bands for the visible interval and turns
// pointer input over them into viewport actions: hovering moves the cursor,
// vertical scrolling zooms around the pointer, and horizontal scrolling pans.
type SeriesView struct {
	zoom gesture.Scroll
	pan  gesture.Scroll
	// ZoomStep scales the interval width once per scroll step.
	ZoomStep float64
	// LabelWidth is the width of the channel name column left of the plot.
	LabelWidth unit.Dp

	// hover gesture state
	pos       f32.Point
	isHovered bool
	// size is the plot size from the previous frame, which is what the
	// pointer positions of this frame's events refer to.
	size image.Point
}

func (s *SeriesView) timeAt(interval backend.Interval, x float32) (float64, bool) {
	sc, err := scale.New([2]float64{0, float64(s.size.X)}, interval)
	if err != nil || s.size.X <= 0 {
		return 0, false
	}
	return sc.Apply(float64(x)), true
}

// Update dispatches the actions implied by this frame's pointer input.
func (s *SeriesView) Update(gtx C, vc *viewport.Controller) {
	st := vc.Snapshot()
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Enter, pointer.Move:
			s.isHovered = true
			s.pos = e.Position
			if t, ok := s.timeAt(st.Interval, e.Position.X); ok {
				dispatch(vc, viewport.SetCursor{Time: t})
			}
		case pointer.Leave, pointer.Cancel:
			s.isHovered = false
			dispatch(vc, viewport.ClearCursor{})
		}
	}
	if dist := s.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 {
		factor := s.ZoomStep
		if factor <= 1 {
			factor = defaultZoomStep
		}
		if dist < 0 {
			factor = 1 / factor
		}
		anchor := (st.Interval[0] + st.Interval[1]) / 2
		if s.isHovered {
			if t, ok := s.timeAt(st.Interval, s.pos.X); ok {
				anchor = t
			}
		}
		dispatch(vc, viewport.Zoom{Anchor: anchor, Factor: factor})
	}
	if dist := s.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0)); dist != 0 && s.size.X > 0 {
		delta := float64(dist) / float64(s.size.X) * st.Interval.Width()
		dispatch(vc, viewport.Pan{Delta: delta})
	}
}

// Layout composes and paints the bands with their names to the left. The
// readout follows the pointer's vertical position while the cursor is inside
// the interval.
func (s *SeriesView) Layout(gtx C, th *material.Theme, comp *scene.Compositor, vc *viewport.Controller, ds *backend.Dataset) (D, scene.Scene) {
	s.Update(gtx, vc)
	full := gtx.Constraints.Max
	labelWidth := gtx.Dp(s.LabelWidth)
	size := image.Pt(max(full.X-labelWidth, 0), full.Y)
	s.size = size
	sc := comp.Compose(vc.Snapshot(), ds, layout.FPt(size))

	paintLabels(gtx, th, sc.Labels, labelWidth, size.Y)
	defer op.Offset(image.Pt(labelWidth, 0)).Push(gtx.Ops).Pop()
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	s.pan.Add(gtx.Ops)
	s.zoom.Add(gtx.Ops)
	event.Op(gtx.Ops, s)
	paintScene(gtx, th, sc)
	gtx.Constraints = layout.Exact(size)
	if s.isHovered {
		layoutReadout(gtx, th, sc, s.pos.Y)
	}
	layoutAdvisory(gtx, th, sc.Advisory)
	return D{Size: full}, sc
}
