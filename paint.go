package main

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/seriesview/scene"
)

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func pt(p f32.Point) image.Point {
	return image.Pt(int(p.X+.5), int(p.Y+.5))
}

func withOpacity(c color.NRGBA, opacity float32) color.NRGBA {
	c.A = uint8(float32(c.A)*min(max(opacity, 0), 1) + .5)
	return c
}

const tickLength = unit.Dp(4)

// paintScene draws sc back to front: rects, lines, axes, and the cursor.
// Labels sit outside the plot and are painted by paintLabels.
func paintScene(gtx C, th *material.Theme, sc scene.Scene) {
	defer clip.Rect{Max: pt(sc.Size)}.Push(gtx.Ops).Pop()
	for _, r := range sc.Rects {
		paint.FillShape(gtx.Ops, withOpacity(r.Color, r.Opacity), clip.Rect{Min: pt(r.Min), Max: pt(r.Max)}.Op())
	}
	for _, l := range sc.Lines {
		paintLine(gtx, l)
	}
	for _, a := range sc.Axes {
		paintAxis(gtx, th, a)
	}
	if sc.CursorSet {
		paintLine(gtx, sc.Cursor)
	}
}

// paintLine strokes a polyline, clipped to its frame so that the neighbour
// samples just outside the interval do not spill into other bands.
func paintLine(gtx C, l scene.Line) {
	if len(l.Points) < 2 {
		return
	}
	defer clip.Rect{Min: pt(l.Frame.Min), Max: pt(l.Frame.Max)}.Push(gtx.Ops).Pop()
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(l.Frame.Project(l.Points[0]))
	for _, point := range l.Points[1:] {
		p.LineTo(l.Frame.Project(point))
	}
	width := max(float32(gtx.Dp(unit.Dp(l.Width))), 1)
	paint.FillShape(gtx.Ops, l.Color, clip.Stroke{Path: p.End(), Width: width}.Op())
}

func paintAxis(gtx C, th *material.Theme, a scene.Axis) {
	one := gtx.Dp(1)
	tick := gtx.Dp(tickLength)
	origin := pt(a.Origin)
	length := int(a.Length + .5)
	if a.Orientation.Horizontal() {
		paint.FillShape(gtx.Ops, scene.AxisColor, clip.Rect{Min: origin, Max: origin.Add(image.Pt(length, one))}.Op())
	} else {
		paint.FillShape(gtx.Ops, scene.AxisColor, clip.Rect{Min: origin, Max: origin.Add(image.Pt(one, length))}.Op())
	}
	for _, t := range a.Ticks {
		offset := int(t.Offset + .5)
		var mark image.Rectangle
		var anchor image.Point
		switch a.Orientation {
		case scene.OrientBottom:
			mark = image.Rect(offset, 0, offset+one, tick)
			anchor = image.Pt(offset, tick)
		case scene.OrientTop:
			mark = image.Rect(offset, -tick, offset+one, 0)
			anchor = image.Pt(offset, -tick)
		case scene.OrientRight:
			mark = image.Rect(0, offset, tick, offset+one)
			anchor = image.Pt(tick, offset)
		case scene.OrientLeft:
			mark = image.Rect(-tick, offset, 0, offset+one)
			anchor = image.Pt(-tick, offset)
		}
		paint.FillShape(gtx.Ops, scene.AxisColor, clip.Rect(mark.Add(origin)).Op())
		if t.Label == "" {
			continue
		}
		l := material.Caption(th, t.Label)
		l.Color = scene.AxisColor
		l.MaxLines = 1
		gtx := gtx
		gtx.Constraints.Min = image.Point{}
		dims, call := rec(gtx, l.Layout)
		pos := origin.Add(anchor)
		switch a.Orientation {
		case scene.OrientBottom:
			pos.X -= dims.Size.X / 2
		case scene.OrientTop:
			pos.X -= dims.Size.X / 2
			pos.Y -= dims.Size.Y
		case scene.OrientRight:
			pos.Y -= dims.Size.Y / 2
		case scene.OrientLeft:
			pos.X -= dims.Size.X
			pos.Y -= dims.Size.Y / 2
		}
		stack := op.Offset(pos).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

// paintLabels draws the band names into a column of the given width to the
// left of the plot origin.
func paintLabels(gtx C, th *material.Theme, labels []scene.Label, width, height int) {
	defer clip.Rect{Max: image.Pt(width, height)}.Push(gtx.Ops).Pop()
	defer op.Offset(image.Pt(width, 0)).Push(gtx.Ops).Pop()
	for _, l := range labels {
		paintLabel(gtx, th, l)
	}
}

func paintLabel(gtx C, th *material.Theme, l scene.Label) {
	label := material.Body2(th, l.Text)
	label.Color = l.Color
	label.MaxLines = 1
	gtx.Constraints.Min = image.Point{}
	dims, call := rec(gtx, label.Layout)
	pos := pt(l.Pos)
	pos.Y -= dims.Size.Y / 2
	switch l.Align {
	case scene.AlignMiddle:
		pos.X -= dims.Size.X / 2
	case scene.AlignEnd:
		pos.X -= dims.Size.X + gtx.Dp(4)
	}
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

// layoutReadout draws the cursor values in a translucent box beside the
// cursor, flipping to whichever side of it has more room.
func layoutReadout(gtx C, th *material.Theme, sc scene.Scene, pointerY float32) {
	if !sc.CursorSet || len(sc.Readout) == 0 {
		return
	}
	children := make([]layout.FlexChild, 0, len(sc.Readout))
	for _, r := range sc.Readout {
		r := r
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					size := image.Pt(gtx.Dp(8), gtx.Dp(8))
					paint.FillShape(gtx.Ops, r.Color, clip.Ellipse{Max: size}.Op(gtx.Ops))
					return D{Size: size}
				}),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(material.Body2(th, r.Name).Layout),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(material.Body2(th, readoutText(r)).Layout),
			)
		}))
	}
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	boxDims, boxCall := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
				})
			},
		)
	})
	gtx.Constraints = origConstraints

	cursorX := int(sc.Cursor.Frame.Project(sc.Cursor.Points[0]).X)
	gap := gtx.Dp(8)
	pos := image.Point{}
	if cursorX > gtx.Constraints.Max.X-cursorX {
		pos.X = max(cursorX-gap-boxDims.Size.X, 0)
	} else {
		pos.X = min(cursorX+gap, gtx.Constraints.Max.X-boxDims.Size.X)
	}
	pos.Y = int(pointerY)
	if offscreenY := gtx.Constraints.Max.Y - (pos.Y + boxDims.Size.Y); offscreenY < 0 {
		pos.Y += offscreenY
	}
	pos.Y = max(pos.Y, 0)
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	boxCall.Add(gtx.Ops)
}

func readoutText(r scene.Readout) string {
	text := ""
	for i, row := range r.Rows {
		if i > 0 {
			text += " / "
		}
		if row.OK {
			text += row.Text
		} else {
			text += "-"
		}
	}
	return text
}

// layoutAdvisory centres a notice at the top of the plot.
func layoutAdvisory(gtx C, th *material.Theme, advisory string) {
	if advisory == "" {
		return
	}
	layout.N.Layout(gtx, func(gtx C) D {
		return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, color.NRGBA{R: 0xff, G: 0xf3, B: 0xcd, A: 0xee}, clip.Rect{Max: gtx.Constraints.Min}.Op())
					return D{Size: gtx.Constraints.Min}
				},
				func(gtx C) D {
					return layout.UniformInset(6).Layout(gtx, material.Body2(th, advisory).Layout)
				},
			)
		})
	})
}
