package main

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/scene"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

func mustIcon(data []byte) *widget.Icon {
	icon, _ := widget.NewIcon(data)
	return icon
}

var (
	shrinkIcon    = mustIcon(icons.ContentRemove)
	growIcon      = mustIcon(icons.ContentAdd)
	firstPageIcon = mustIcon(icons.NavigationFirstPage)
	prevIcon      = mustIcon(icons.NavigationChevronLeft)
	nextIcon      = mustIcon(icons.NavigationChevronRight)
	lastPageIcon  = mustIcon(icons.NavigationLastPage)
	zoomOutIcon   = mustIcon(icons.ActionZoomOut)
	openIcon      = mustIcon(icons.FileFolderOpen)
)

// Controls holds the toolbar, filter selectors, channel legend, and epoch
// list that sit around the series view.
type Controls struct {
	open          widget.Clickable
	ampShrink     widget.Clickable
	ampReset      widget.Clickable
	ampGrow       widget.Clickable
	resetInterval widget.Clickable
	firstPage     widget.Clickable
	prevOne       widget.Clickable
	nextOne       widget.Clickable
	lastPage      widget.Clickable
	highPass      widget.Enum
	lowPass       widget.Enum

	channelToggles []*widget.Clickable
	epochToggles   []*widget.Clickable
	legend         component.GridState
	epochList      widget.List

	palette []color.NRGBA
}

func NewControls(palette []color.NRGBA) *Controls {
	return &Controls{
		palette:   palette,
		epochList: widget.List{List: layout.List{Axis: layout.Vertical}},
	}
}

// SetFilters shows sel as the selected presets.
func (c *Controls) SetFilters(sel backend.FilterSelection) {
	c.highPass.Value = sel.HighPass
	c.lowPass.Value = sel.LowPass
	if c.highPass.Value == "" {
		c.highPass.Value = backend.FilterNone
	}
	if c.lowPass.Value == "" {
		c.lowPass.Value = backend.FilterNone
	}
}

// growToggles makes sure there is a toggle per channel and per epoch.
// Existing toggles keep their addresses, so a click in progress survives.
func (c *Controls) growToggles(channels, epochs int) {
	for len(c.channelToggles) < channels {
		c.channelToggles = append(c.channelToggles, new(widget.Clickable))
	}
	for len(c.epochToggles) < epochs {
		c.epochToggles = append(c.epochToggles, new(widget.Clickable))
	}
}

// Update dispatches the viewport actions requested since the last frame. It
// reports whether the filter selection changed, and whether the user asked to
// open a dataset.
func (c *Controls) Update(gtx C, vc *viewport.Controller, ds *backend.Dataset) (filters backend.FilterSelection, filtersChanged, openRequested bool) {
	total := 0
	if ds != nil {
		total = len(ds.ChannelMetadata)
		c.growToggles(total, len(ds.Epochs))
	}
	if c.ampShrink.Clicked(gtx) {
		dispatch(vc, viewport.SetAmplitudeScale{Factor: viewport.AmplitudeShrink})
	}
	if c.ampReset.Clicked(gtx) {
		dispatch(vc, viewport.ResetAmplitudeScale{})
	}
	if c.ampGrow.Clicked(gtx) {
		dispatch(vc, viewport.SetAmplitudeScale{Factor: viewport.AmplitudeGrow})
	}
	if c.resetInterval.Clicked(gtx) {
		dispatch(vc, viewport.ResetInterval{})
	}
	for _, step := range []struct {
		btn  *widget.Clickable
		step viewport.Step
	}{
		{&c.firstPage, viewport.StepPrevPage},
		{&c.prevOne, viewport.StepPrevOne},
		{&c.nextOne, viewport.StepNextOne},
		{&c.lastPage, viewport.StepNextPage},
	} {
		if step.btn.Clicked(gtx) {
			dispatch(vc, viewport.StepOffset{Step: step.step, Total: total})
		}
	}
	for i, toggle := range c.channelToggles[:total] {
		if toggle.Clicked(gtx) {
			dispatch(vc, viewport.ToggleChannel{Index: i})
		}
	}
	if ds != nil {
		for i, toggle := range c.epochToggles[:len(ds.Epochs)] {
			if toggle.Clicked(gtx) {
				dispatch(vc, viewport.ToggleEpoch{Index: i})
			}
		}
	}
	hp := c.highPass.Update(gtx)
	lp := c.lowPass.Update(gtx)
	filters = backend.FilterSelection{HighPass: c.highPass.Value, LowPass: c.lowPass.Value}
	return filters, hp || lp, c.open.Clicked(gtx)
}

func iconButton(th *material.Theme, btn *widget.Clickable, icon *widget.Icon, description string) layout.Widget {
	b := material.IconButton(th, btn, icon, description)
	b.Size = 18
	b.Inset = layout.UniformInset(6)
	return b.Layout
}

var toolbarInset = layout.Inset{Left: 4, Right: 4}

// LayoutToolbar draws the amplitude, interval, and channel page controls.
func (c *Controls) LayoutToolbar(gtx C, th *material.Theme, pageLabel string) D {
	spaced := func(w layout.Widget) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			return toolbarInset.Layout(gtx, w)
		})
	}
	return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			spaced(iconButton(th, &c.open, openIcon, "Open dataset")),
			spaced(material.Body2(th, "Amplitude").Layout),
			spaced(iconButton(th, &c.ampShrink, shrinkIcon, "Shrink amplitude")),
			spaced(material.Button(th, &c.ampReset, "Reset").Layout),
			spaced(iconButton(th, &c.ampGrow, growIcon, "Grow amplitude")),
			spaced(iconButton(th, &c.resetInterval, zoomOutIcon, "Show whole recording")),
			layout.Flexed(1, func(gtx C) D {
				return D{Size: image.Pt(gtx.Constraints.Min.X, 0)}
			}),
			spaced(iconButton(th, &c.firstPage, firstPageIcon, "Previous page of channels")),
			spaced(iconButton(th, &c.prevOne, prevIcon, "Previous channel")),
			spaced(func(gtx C) D {
				l := material.Body2(th, pageLabel)
				l.Alignment = text.Middle
				return l.Layout(gtx)
			}),
			spaced(iconButton(th, &c.nextOne, nextIcon, "Next channel")),
			spaced(iconButton(th, &c.lastPage, lastPageIcon, "Next page of channels")),
		)
	})
}

// LayoutFilters draws one row of tabs per filter kind.
func (c *Controls) LayoutFilters(gtx C, th *material.Theme) D {
	row := func(state *widget.Enum, presets []backend.FilterPreset) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			children := make([]layout.FlexChild, 0, len(presets))
			for _, p := range presets {
				children = append(children, layout.Flexed(1, Tab(th, state, p.Key, p.Label).Layout))
			}
			return layout.Flex{}.Layout(gtx, children...)
		})
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		row(&c.highPass, backend.HighPassFilters),
		row(&c.lowPass, backend.LowPassFilters),
	)
}

// LayoutLegend draws a table of every channel with its colour, visibility
// toggle, series range, and the value under the cursor.
func (c *Controls) LayoutLegend(gtx C, th *material.Theme, ds *backend.Dataset, st viewport.State, sc scene.Scene) D {
	if ds == nil {
		return D{}
	}
	cursorText := map[int]string{}
	for _, r := range sc.Readout {
		cursorText[r.Channel] = readoutText(r)
	}
	table := component.Table(th, &c.legend)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	rangeColWidth := gtx.Dp(140)
	nameColWidth := max(gtx.Constraints.Max.X-colorColWidth-valueColWidth-rangeColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		nameCol
		valueCol
		rangeCol
		numCols
	)
	rows := len(ds.ChannelMetadata)
	return table.Layout(gtx, rows, numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case nameCol:
				size = nameColWidth
			case valueCol:
				size = valueColWidth
			case rangeCol:
				size = rangeColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Shown")
			case nameCol:
				l = material.Body1(th, "Channel")
			case valueCol:
				l = material.Body1(th, "At cursor")
				l.Alignment = text.End
			case rangeCol:
				l = material.Body1(th, "Series range")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			meta, hasMeta := ds.Metadata(row)
			shown := hasMeta && !st.Hidden[row]
			const disabledAlpha = uint8(100)
			rowColor := scene.ChannelColor(c.palette, row)
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return c.channelToggles[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							fill := rowColor
							if !shown {
								fill.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fill, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case nameCol:
					name := meta.Name
					if !hasMeta {
						name = fmt.Sprintf("Channel %d (no metadata)", row)
					}
					l := material.Body2(th, name)
					if !shown {
						l.Color.A = disabledAlpha
					}
					return l.Layout(gtx)
				case valueCol:
					l := material.Body2(th, cursorText[row])
					l.Alignment = text.End
					return l.Layout(gtx)
				case rangeCol:
					if !hasMeta {
						return D{Size: gtx.Constraints.Min}
					}
					l := material.Body2(th, fmt.Sprintf("%.1f to %.1f", meta.SeriesRange[0]*st.AmplitudeScale, meta.SeriesRange[1]*st.AmplitudeScale))
					l.Alignment = text.End
					if !shown {
						l.Color.A = disabledAlpha
					}
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				stripe := rowColor
				stripe.A = 50
				paint.FillShape(gtx.Ops, stripe, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}

// LayoutEpochs lists every epoch with a toggle to hide it from the plot.
func (c *Controls) LayoutEpochs(gtx C, th *material.Theme, ds *backend.Dataset, st viewport.State) D {
	if ds == nil || len(ds.Epochs) == 0 {
		return layout.UniformInset(8).Layout(gtx, material.Body2(th, "No events").Layout)
	}
	return material.List(th, &c.epochList).Layout(gtx, len(ds.Epochs), func(gtx C, i int) D {
		e := ds.Epochs[i]
		hidden := st.HiddenEpochs[i]
		return c.epochToggles[i].Layout(gtx, func(gtx C) D {
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx C) D {
						size := image.Pt(gtx.Dp(10), gtx.Dp(10))
						fill := scene.EpochColor(c.palette, e.Type)
						if hidden {
							fill.A = 60
						}
						paint.FillShape(gtx.Ops, fill, clip.Rect{Max: size}.Op())
						return D{Size: size}
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Flexed(1, func(gtx C) D {
						l := material.Body2(th, describeEpoch(e))
						l.MaxLines = 1
						if hidden {
							l.Color.A = 100
						}
						return l.Layout(gtx)
					}),
				)
			})
		})
	})
}

func describeEpoch(e backend.Epoch) string {
	channels := "all channels"
	if !e.All {
		parts := make([]string, len(e.Channels))
		for i, ch := range e.Channels {
			parts[i] = strconv.Itoa(ch)
		}
		channels = "channels " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s  %.2fs to %.2fs  (%s)", e.Type, e.Onset, e.End(), channels)
}
