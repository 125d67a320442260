// Package scene assembles a declarative description of one frame of the
// series display. It decides what goes where; drawing is left to a renderer.
package scene

import (
	"image/color"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/seriesview/geometry"
)

// Frame is a pixel rectangle.
type Frame struct {
	Min, Max f32.Point
}

func (f Frame) Size() f32.Point {
	return f.Max.Sub(f.Min)
}

// Project maps a point in unit space onto the frame.
func (f Frame) Project(p f32.Point) f32.Point {
	sz := f.Size()
	return f32.Pt(f.Min.X+p.X*sz.X, f.Min.Y+p.Y*sz.Y)
}

// Line is a polyline whose points are in the unit space of Frame.
type Line struct {
	Frame  Frame
	Points geometry.Geometry
	Width  float32
	Color  color.NRGBA
}

// Rect is a filled rectangle in pixels.
type Rect struct {
	Min, Max f32.Point
	Color    color.NRGBA
	Opacity  float32
}

type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignMiddle
	AlignEnd
)

// Label is a piece of text anchored at Pos.
type Label struct {
	Pos   f32.Point
	Text  string
	Align Alignment
	Color color.NRGBA
}

type Orientation uint8

// The orientation names the side of the axis line that its ticks and labels
// sit on.
const (
	OrientTop Orientation = iota
	OrientBottom
	OrientLeft
	OrientRight
)

func (o Orientation) Horizontal() bool {
	return o == OrientTop || o == OrientBottom
}

// Tick is a mark Offset pixels along its axis from the axis origin.
type Tick struct {
	Offset float32
	Label  string
}

// Axis is a straight axis line of Length pixels starting at Origin.
type Axis struct {
	Orientation Orientation
	Origin      f32.Point
	Length      float32
	Ticks       []Tick
}

// Band is the horizontal strip assigned to one visible channel.
type Band struct {
	Channel int
	Name    string
	Frame   Frame
	Color   color.NRGBA
}

// ReadoutRow is the value of one trace at the cursor. OK is false when no
// chunk covers the cursor, and Text is then empty.
type ReadoutRow struct {
	Trace int
	Value float64
	OK    bool
	Text  string
}

// Readout lists the cursor values of one channel.
type Readout struct {
	Channel int
	Name    string
	Color   color.NRGBA
	Rows    []ReadoutRow
}

// Scene is everything a renderer needs to draw a frame, back to front:
// rects, lines, axes, then labels.
type Scene struct {
	Size   f32.Point
	Bands  []Band
	Rects  []Rect
	Lines  []Line
	Axes   []Axis
	Labels []Label
	// Advisory is a user-facing notice, such as too many epochs to draw.
	Advisory string
	// Cursor is the vertical cursor line; CursorSet is false when there is
	// no cursor inside the interval.
	Cursor    Line
	CursorSet bool
	Readout   []Readout
	PageLabel string
}
