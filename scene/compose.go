package scene

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/geometry"
	"git.sr.ht/~whereswaldon/seriesview/scale"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
)

// Options tune the compositor's output.
type Options struct {
	XTicks       int
	YTicks       int
	YTickPadding int
	EpochCap     int
	EpochOpacity float32
	LineWidth    float32
	Palette      []color.NRGBA
}

func DefaultOptions() Options {
	return Options{
		XTicks:       10,
		YTicks:       5,
		YTickPadding: 1,
		EpochCap:     viewport.DefaultEpochCap,
		EpochOpacity: 0.3,
		LineWidth:    1,
		Palette:      DefaultPalette,
	}
}

const epochOverflowAdvisory = "Too many events to display in this range. Zoom in to see them."

// Compositor turns a viewport state and a dataset into a Scene. Chunk
// geometry is memoized in Cache, so recomposing an unchanged frame, as
// happens on every cursor move, computes nothing new.
type Compositor struct {
	Cache   *geometry.Cache
	Options Options
}

func NewCompositor(cache *geometry.Cache, opts Options) *Compositor {
	return &Compositor{Cache: cache, Options: opts}
}

// Compose lays out a frame of the given pixel size. Channels without
// metadata are skipped, empty chunks draw nothing, and epochs beyond the
// configured cap are replaced by an advisory.
func (c *Compositor) Compose(st viewport.State, ds *backend.Dataset, size f32.Point) Scene {
	sc := Scene{Size: size}
	if ds == nil {
		return sc
	}
	total := len(ds.ChannelMetadata)
	sc.PageLabel = viewport.PageLabel(st.OffsetIndex, st.Limit, total)
	timeScale, err := scale.New(st.Interval, [2]float64{0, float64(size.X)})
	if err != nil || size.X <= 0 || size.Y <= 0 {
		return sc
	}

	type visibleBand struct {
		channel backend.Channel
		meta    backend.ChannelMetadata
	}
	var bands []visibleBand
	for _, ch := range viewport.VisibleChannels(ds.Channels, st.Hidden, st.OffsetIndex, st.Limit, total) {
		meta, ok := ds.Metadata(ch.Index)
		if !ok {
			continue
		}
		bands = append(bands, visibleBand{channel: ch, meta: meta})
	}

	bandHeight := size.Y
	if len(bands) > 0 {
		bandHeight = size.Y / float32(len(bands))
	}
	for i, b := range bands {
		frame := Frame{
			Min: f32.Pt(0, float32(i)*bandHeight),
			Max: f32.Pt(size.X, float32(i+1)*bandHeight),
		}
		col := ChannelColor(c.Options.Palette, b.channel.Index)
		sc.Bands = append(sc.Bands, Band{
			Channel: b.channel.Index,
			Name:    b.meta.Name,
			Frame:   frame,
			Color:   col,
		})
		sc.Labels = append(sc.Labels, Label{
			Pos:   f32.Pt(0, frame.Min.Y+bandHeight/2),
			Text:  b.meta.Name,
			Align: AlignEnd,
			Color: AxisColor,
		})
		sc.Lines = c.appendChannelLines(sc.Lines, st, b.channel, b.meta, frame, col)
		if axis, ok := c.channelAxis(st, b.meta, frame); ok {
			sc.Axes = append(sc.Axes, axis)
		}
	}

	sc.Axes = append(sc.Axes,
		c.timeAxis(timeScale, OrientBottom, f32.Pt(0, 0), size.X),
		c.timeAxis(timeScale, OrientTop, f32.Pt(0, size.Y), size.X),
	)

	sc.Rects, sc.Advisory = c.epochRects(st, ds, timeScale, sc.Bands, size)

	if st.CursorSet && st.Interval.Contains(st.Cursor) {
		x := float32((st.Cursor - st.Interval[0]) / st.Interval.Width())
		sc.CursorSet = true
		sc.Cursor = Line{
			Frame:  Frame{Max: size},
			Points: geometry.Geometry{f32.Pt(x, 0), f32.Pt(x, 1)},
			Width:  c.Options.LineWidth,
			Color:  CursorColor,
		}
		for i, b := range bands {
			sc.Readout = append(sc.Readout, readout(b.channel, b.meta.Name, sc.Bands[i].Color, st.Cursor))
		}
	}
	return sc
}

// appendChannelLines fetches the geometry of every chunk of ch that overlaps
// the viewport interval.
func (c *Compositor) appendChannelLines(lines []Line, st viewport.State, ch backend.Channel, meta backend.ChannelMetadata, frame Frame, col color.NRGBA) []Line {
	for j, tr := range ch.Traces {
		first := sort.Search(len(tr.Chunks), func(k int) bool {
			return tr.Chunks[k].Interval[1] >= st.Interval[0]
		})
		for k := first; k < len(tr.Chunks); k++ {
			chunk := tr.Chunks[k]
			if chunk.Interval[0] > st.Interval[1] {
				break
			}
			key := geometry.Key{
				Interval:       st.Interval,
				ChunkInterval:  chunk.Interval,
				ChunkID:        chunk.ID,
				SeriesRange:    meta.SeriesRange,
				AmplitudeScale: st.AmplitudeScale,
				Channel:        ch.Index,
				Trace:          j,
				Chunk:          k,
			}
			points := c.Cache.Get(key, func() geometry.Geometry {
				return geometry.Compute(chunk, st.Interval, meta.SeriesRange, st.AmplitudeScale)
			})
			if len(points) == 0 {
				continue
			}
			lines = append(lines, Line{
				Frame:  frame,
				Points: points,
				Width:  c.Options.LineWidth,
				Color:  col,
			})
		}
	}
	return lines
}

// channelAxis builds the unlabelled amplitude axis of a band. It runs down the
// band's left edge with OrientRight ticks, so the marks point into the plot.
func (c *Compositor) channelAxis(st viewport.State, meta backend.ChannelMetadata, frame Frame) (Axis, bool) {
	domain := [2]float64{meta.SeriesRange[0] * st.AmplitudeScale, meta.SeriesRange[1] * st.AmplitudeScale}
	height := frame.Size().Y
	valueScale, err := scale.New(domain, [2]float64{float64(height), 0})
	if err != nil {
		return Axis{}, false
	}
	axis := Axis{
		Orientation: OrientRight,
		Origin:      frame.Min,
		Length:      height,
	}
	for _, v := range valueScale.Ticks(c.Options.YTicks, c.Options.YTickPadding) {
		axis.Ticks = append(axis.Ticks, Tick{Offset: float32(valueScale.Apply(v))})
	}
	return axis, true
}

func (c *Compositor) timeAxis(timeScale scale.Linear, orient Orientation, origin f32.Point, length float32) Axis {
	ticks := timeScale.Ticks(c.Options.XTicks, 0)
	axis := Axis{
		Orientation: orient,
		Origin:      origin,
		Length:      length,
		Ticks:       make([]Tick, 0, len(ticks)),
	}
	step := 0.0
	if len(ticks) > 1 {
		step = math.Abs(ticks[1] - ticks[0])
	}
	for _, t := range ticks {
		axis.Ticks = append(axis.Ticks, Tick{
			Offset: float32(timeScale.Apply(t)),
			Label:  FormatTick(t, step),
		})
	}
	return axis
}

// epochRects draws the visible epochs, or returns an advisory when there are
// too many of them to draw honestly.
func (c *Compositor) epochRects(st viewport.State, ds *backend.Dataset, timeScale scale.Linear, bands []Band, size f32.Point) ([]Rect, string) {
	limit := c.Options.EpochCap
	if limit <= 0 {
		limit = viewport.DefaultEpochCap
	}
	indices, overflow := viewport.VisibleEpochs(ds.Epochs, st.Interval, limit)
	if overflow {
		return nil, epochOverflowAdvisory
	}
	indices = viewport.WithoutHidden(indices, st.HiddenEpochs)
	minWidth := float32(viewport.MinEpochWidth) * size.X
	var rects []Rect
	for _, i := range indices {
		e := ds.Epochs[i]
		x0 := max(0, float32(timeScale.Apply(e.Onset)))
		x1 := min(size.X, float32(timeScale.Apply(e.End())))
		if x1-x0 < minWidth {
			x1 = min(size.X, x0+minWidth)
			x0 = x1 - minWidth
		}
		col := EpochColor(c.Options.Palette, e.Type)
		if e.All {
			rects = append(rects, Rect{
				Min:     f32.Pt(x0, 0),
				Max:     f32.Pt(x1, size.Y),
				Color:   col,
				Opacity: c.Options.EpochOpacity,
			})
			continue
		}
		for _, b := range bands {
			if !e.Covers(b.Channel) {
				continue
			}
			rects = append(rects, Rect{
				Min:     f32.Pt(x0, b.Frame.Min.Y),
				Max:     f32.Pt(x1, b.Frame.Max.Y),
				Color:   col,
				Opacity: c.Options.EpochOpacity,
			})
		}
	}
	return rects, ""
}

func readout(ch backend.Channel, name string, col color.NRGBA, cursor float64) Readout {
	r := Readout{Channel: ch.Index, Name: name, Color: col}
	for j, tr := range ch.Traces {
		row := ReadoutRow{Trace: j}
		row.Value, row.OK = tr.ValueAt(cursor)
		if row.OK {
			row.Text = strconv.FormatFloat(row.Value, 'f', 2, 64)
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// FormatTick prints a tick value with just enough decimals to tell it apart
// from its neighbours step away.
func FormatTick(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// ComposeOverview lays out the interval selection strip: a time axis over
// the whole domain and shaded regions outside the visible interval, or
// outside the live selection while a drag is in progress.
func (c *Compositor) ComposeOverview(st viewport.State, size f32.Point) Scene {
	sc := Scene{Size: size}
	domainScale, err := scale.New(st.Domain, [2]float64{0, float64(size.X)})
	if err != nil || size.X <= 0 {
		return sc
	}
	shown := st.Interval
	if sel, ok := st.Selection(); ok {
		shown = sel
	}
	left := float32(domainScale.Apply(shown[0]))
	right := float32(domainScale.Apply(shown[1]))
	sc.Rects = []Rect{
		{Min: f32.Pt(0, 0), Max: f32.Pt(max(0, left), size.Y), Color: OutsideColor, Opacity: c.Options.EpochOpacity},
		{Min: f32.Pt(min(size.X, right), 0), Max: size, Color: OutsideColor, Opacity: c.Options.EpochOpacity},
	}
	sc.Axes = []Axis{c.timeAxis(domainScale, OrientTop, f32.Pt(0, size.Y), size.X)}
	return sc
}

// Describe summarizes a scene for logs and text reports.
func Describe(sc Scene) string {
	points := 0
	for _, l := range sc.Lines {
		points += len(l.Points)
	}
	return fmt.Sprintf("%d bands, %d lines (%d points), %d epoch rects, %d axes", len(sc.Bands), len(sc.Lines), points, len(sc.Rects), len(sc.Axes))
}
