package main

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/seriesview/scene"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
)

// IntervalStrip shows the whole domain with the visible interval left clear.
// Pressing on it starts a drag that selects a new interval; the rest of the
// drag is tracked by the window surface, so releasing anywhere commits it.
type IntervalStrip struct {
	// OriginX is the strip's left edge in window pixels, the unit the window
	// surface reports drag positions in.
	OriginX int
}

func (s *IntervalStrip) Update(gtx C, vc *viewport.Controller, width int) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok || e.Kind != pointer.Press || e.Buttons&pointer.ButtonPrimary == 0 {
			continue
		}
		origin := float64(s.OriginX)
		vc.StartDrag(origin+float64(e.Position.X), viewport.Extent{Min: origin, Max: origin + float64(width)})
	}
}

func (s *IntervalStrip) Layout(gtx C, th *material.Theme, comp *scene.Compositor, vc *viewport.Controller) D {
	size := gtx.Constraints.Max
	s.Update(gtx, vc, size.X)
	sc := comp.ComposeOverview(vc.Snapshot(), layout.FPt(size))

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	pointer.CursorColResize.Add(gtx.Ops)
	event.Op(gtx.Ops, s)
	paint.FillShape(gtx.Ops, th.Bg, clip.Rect{Max: size}.Op())
	paintScene(gtx, th, sc)
	// Top border.
	paint.FillShape(gtx.Ops, scene.AxisColor, clip.Rect{Max: image.Pt(size.X, gtx.Dp(1))}.Op())
	return D{Size: size}
}
