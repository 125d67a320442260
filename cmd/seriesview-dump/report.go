package main

import (
	"fmt"
	"image/color"
	"strings"

	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/geometry"
	"git.sr.ht/~whereswaldon/seriesview/scene"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2b7fa8"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e0e0"))
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	headerStyle   = cellStyle.Bold(true)
	tableStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	advisoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	pillMarker    = "▐"
)

type report struct {
	source  string
	state   viewport.State
	dataset *backend.Dataset
	scene   scene.Scene
	stats   geometry.Stats
	filters backend.FilterSelection
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func filterText(sel backend.FilterSelection) string {
	tags := sel.Tags()
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}

func (r report) summary() string {
	st := r.state
	rows := [][2]string{
		{"source", r.source},
		{"channels", r.scene.PageLabel},
		{"domain", fmt.Sprintf("%g to %g s", st.Domain[0], st.Domain[1])},
		{"interval", fmt.Sprintf("%g to %g s", st.Interval[0], st.Interval[1])},
		{"amplitude", fmt.Sprintf("%g", st.AmplitudeScale)},
		{"filters", filterText(r.filters)},
		{"scene", scene.Describe(r.scene)},
		{"cache", fmt.Sprintf("%d entries, %d hits, %d misses, %d evictions", r.stats.Len, r.stats.Hits, r.stats.Misses, r.stats.Evictions)},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(row[0]), valueStyle.Render(row[1])))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// bands lists the visible channels with their colour, line count, and the
// value under the cursor.
func (r report) bands() string {
	lineCount := map[scene.Frame]int{}
	for _, l := range r.scene.Lines {
		lineCount[l.Frame]++
	}
	readouts := map[int]scene.Readout{}
	for _, ro := range r.scene.Readout {
		readouts[ro.Channel] = ro
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Width(4).Render(""),
		headerStyle.Width(20).Render("channel"),
		headerStyle.Width(8).Render("lines"),
		headerStyle.Width(16).Render("at cursor"),
	)
	rows := []string{header}
	for _, b := range r.scene.Bands {
		values := make([]string, 0)
		for _, row := range readouts[b.Channel].Rows {
			if row.OK {
				values = append(values, row.Text)
			} else {
				values = append(values, "-")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			cellStyle.Width(4).Foreground(hex(b.Color)).Render(pillMarker),
			cellStyle.Width(20).Render(fmt.Sprintf("%d %s", b.Channel, b.Name)),
			cellStyle.Width(8).Render(fmt.Sprint(lineCount[b.Frame])),
			cellStyle.Width(16).Render(strings.Join(values, " / ")),
		))
	}
	return tableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (r report) epochs() string {
	if r.scene.Advisory != "" {
		return advisoryStyle.Render(r.scene.Advisory)
	}
	indices, _ := viewport.VisibleEpochs(r.dataset.Epochs, r.state.Interval, len(r.dataset.Epochs)+1)
	if len(indices) == 0 {
		return valueStyle.Render("no events in the interval")
	}
	lines := make([]string, 0, len(indices))
	for _, i := range indices {
		e := r.dataset.Epochs[i]
		marker := lipgloss.NewStyle().Foreground(hex(scene.EpochColor(scene.DefaultPalette, e.Type))).Render(pillMarker)
		lines = append(lines, fmt.Sprintf("%s %s %.2fs to %.2fs", marker, e.Type, e.Onset, e.End()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r report) render() string {
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("seriesview frame"),
		"",
		r.summary(),
		"",
		r.bands(),
		"",
		r.epochs(),
	))
}
