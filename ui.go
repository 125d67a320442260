package main

import (
	"errors"
	"image"
	"image/color"
	"log"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/config"
	"git.sr.ht/~whereswaldon/seriesview/geometry"
	"git.sr.ht/~whereswaldon/seriesview/scene"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	labelColumnWidth = unit.Dp(120)
	stripHeight      = unit.Dp(36)
	panelHeight      = unit.Dp(180)
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	cfg  *config.Config
	th   *material.Theme

	sessionStream *stream.Stream[backend.Session]
	session       backend.Session

	surface    *windowSurface
	viewport   *viewport.Controller
	cache      *geometry.Cache
	compositor *scene.Compositor

	series   SeriesView
	strip    IntervalStrip
	controls *Controls

	openBtn     widget.Clickable
	sampleBtn   widget.Clickable
	loadErr     string
	lastScene   scene.Scene
	lastSession string
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg *config.Config) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	opts := scene.Options{
		XTicks:       cfg.Render.XTicks,
		YTicks:       cfg.Render.YTicks,
		YTickPadding: cfg.Render.YTickPadding,
		EpochCap:     cfg.Render.EpochCap,
		EpochOpacity: cfg.Render.EpochOpacity,
		LineWidth:    cfg.Render.LineWidth,
		Palette:      scene.DefaultPalette,
	}
	cache := geometry.NewCache(cfg.Cache.Capacity)
	surface := newWindowSurface()
	ui := &UI{
		ws:            ws,
		expl:          expl,
		cfg:           cfg,
		th:            th,
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Sessions),
		surface:       surface,
		viewport:      viewport.NewController(viewport.NewState(cfg.Viewport.Limit), surface),
		cache:         cache,
		compositor:    scene.NewCompositor(cache, opts),
		series: SeriesView{
			ZoomStep:   cfg.Viewport.ZoomStep,
			LabelWidth: labelColumnWidth,
		},
		controls: NewControls(opts.Palette),
	}
	ui.controls.SetFilters(backend.FilterSelection{HighPass: cfg.Filters.HighPass, LowPass: cfg.Filters.LowPass})
	return ui
}

type (
	// UIRequest represents a request made by the UI to interact with a non-UI resource.
	UIRequest interface {
		isUIRequest()
	}
	// OpenRequest asks for a dataset to be chosen and loaded.
	OpenRequest struct{}
	// SyntheticRequest asks for a generated dataset.
	SyntheticRequest struct{}
	// FilterRequest asks for the data to be refiltered.
	FilterRequest struct {
		Filters backend.FilterSelection
	}
)

func (OpenRequest) isUIRequest()      {}
func (SyntheticRequest) isUIRequest() {}
func (FilterRequest) isUIRequest()    {}

// dispatch applies a viewport action, logging the ones the controller
// rejects.
func dispatch(vc *viewport.Controller, a viewport.Action) {
	if err := vc.Dispatch(a); err != nil {
		log.Printf("ignored %T: %v", a, err)
	}
}

// Close releases any drag listeners held on the window surface.
func (ui *UI) Close() {
	ui.viewport.Close()
}

// handle carries out a UIRequest against the backend. Requests that may
// block on the user run on their own goroutine.
func (ui *UI) handle(req UIRequest) {
	ds := ui.ws.Bundle.Datasource
	switch req := req.(type) {
	case OpenRequest:
		go func() {
			err := ds.LoadFromFile(ui.expl)
			if err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("failed opening dataset: %v", err)
			}
		}()
	case SyntheticRequest:
		opts := backend.DefaultSyntheticOptions()
		opts.Channels = ui.cfg.Data.SyntheticChannels
		opts.Duration = float64(ui.cfg.Data.SyntheticSeconds)
		ds.UseDataset("synthetic", backend.Synthetic(opts))
	case FilterRequest:
		ds.SetFilters(req.Filters)
	}
}

// applySession brings the viewport in line with a newly published session. A
// new session starts from a fresh view over its domain; a republished one,
// after a reload, a filter change, or a failed load, keeps the view and only
// tracks a grown domain.
func (ui *UI) applySession(s backend.Session) {
	prev := ui.session
	ui.session = s
	if s.Err != nil {
		ui.loadErr = s.Err.Error()
	} else {
		ui.loadErr = ""
	}
	if s.Data == prev.Data {
		return
	}
	// Chunks are replaced wholesale on every publish, so nothing cached for
	// the previous data can be hit again.
	ui.cache.Purge()
	ui.controls.SetFilters(s.Filters)
	if s.Data == nil {
		return
	}
	domain, ok := s.Data.Domain()
	if !ok {
		return
	}
	if s.ID != ui.lastSession {
		ui.lastSession = s.ID
		ui.viewport.Close()
		ui.viewport = viewport.NewController(viewport.NewState(ui.cfg.Viewport.Limit), ui.surface)
		dispatch(ui.viewport, viewport.SetDomain{Domain: domain, Fraction: ui.cfg.Viewport.InitialFraction})
		log.Printf("showing %q: %d channels, domain [%g, %g]", s.Source, len(s.Data.ChannelMetadata), domain[0], domain[1])
		return
	}
	if domain != ui.viewport.Snapshot().Domain {
		dispatch(ui.viewport, viewport.ExtendDomain{Domain: domain})
	}
}

// Update the state of the UI and generate events.
func (ui *UI) Update(gtx C) {
	var s backend.Session
	ui.sessionStream.ReadInto(gtx, &s, backend.Session{})
	if s.Revision != ui.session.Revision {
		ui.applySession(s)
	}
	if ui.openBtn.Clicked(gtx) {
		ui.handle(OpenRequest{})
	}
	if ui.sampleBtn.Clicked(gtx) {
		ui.handle(SyntheticRequest{})
	}
	filters, filtersChanged, open := ui.controls.Update(gtx, ui.viewport, ui.session.Data)
	if filtersChanged {
		ui.handle(FilterRequest{Filters: filters})
	}
	if open {
		ui.handle(OpenRequest{})
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body2(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 1,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	ts.label.MaxLines = 1
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	st := ui.viewport.Snapshot()
	ds := ui.session.Data
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return ui.controls.LayoutToolbar(gtx, ui.th, ui.lastScene.PageLabel)
		}),
		layout.Rigid(func(gtx C) D {
			return ui.controls.LayoutFilters(gtx, ui.th)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return layout.UniformInset(4).Layout(gtx, l.Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			dims, sc := ui.series.Layout(gtx, ui.th, ui.compositor, ui.viewport, ds)
			ui.lastScene = sc
			return dims
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints = layout.Exact(image.Pt(gtx.Constraints.Max.X, gtx.Dp(stripHeight)))
			ui.strip.OriginX = gtx.Dp(labelColumnWidth)
			return layout.Inset{Left: labelColumnWidth}.Layout(gtx, func(gtx C) D {
				return ui.strip.Layout(gtx, ui.th, ui.compositor, ui.viewport)
			})
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = gtx.Dp(panelHeight)
			gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(2, func(gtx C) D {
					return ui.controls.LayoutLegend(gtx, ui.th, ds, st, ui.lastScene)
				}),
				layout.Flexed(1, func(gtx C) D {
					return ui.controls.LayoutEpochs(gtx, ui.th, ds, st)
				}),
			)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No dataset loaded.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Dataset").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.sampleBtn, "Generate Sample Data").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context. The window surface is registered
// beneath everything else so it sees every drag, and its events are handled
// last so that a drag started this frame is already listening.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	ui.surface.Add(gtx.Ops)
	var dims D
	if ui.session.Data.Initialized() {
		dims = ui.layoutMainArea(gtx)
	} else {
		dims = ui.layoutStartScreen(gtx)
	}
	ui.surface.Update(gtx)
	return dims
}
