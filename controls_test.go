package main

import (
	"image/color"
	"testing"

	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/scene"
)

func TestDescribeEpoch(t *testing.T) {
	type testcase struct {
		name     string
		epoch    backend.Epoch
		expected string
	}
	for _, tc := range []testcase{
		{
			name:     "all channels",
			epoch:    backend.Epoch{Onset: 1, Duration: 2.5, Type: "seizure", All: true},
			expected: "seizure  1.00s to 3.50s  (all channels)",
		},
		{
			name:     "some channels",
			epoch:    backend.Epoch{Onset: 0, Duration: 1, Type: "artifact", Channels: []int{0, 3}},
			expected: "artifact  0.00s to 1.00s  (channels 0, 3)",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := describeEpoch(tc.epoch); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestReadoutText(t *testing.T) {
	r := scene.Readout{Rows: []scene.ReadoutRow{
		{Trace: 0, Value: 1.5, OK: true, Text: "1.50"},
		{Trace: 1},
	}}
	if got := readoutText(r); got != "1.50 / -" {
		t.Errorf("expected %q, got %q", "1.50 / -", got)
	}
	if got := readoutText(scene.Readout{}); got != "" {
		t.Errorf("expected empty readout, got %q", got)
	}
}

func TestWithOpacity(t *testing.T) {
	c := color.NRGBA{R: 10, A: 200}
	if got := withOpacity(c, 0.5); got.A != 100 || got.R != 10 {
		t.Errorf("expected alpha 100, got %v", got)
	}
	if got := withOpacity(c, 2); got.A != 200 {
		t.Errorf("expected opacity to clamp at 1, got %v", got)
	}
}

func TestGrowTogglesKeepsAddresses(t *testing.T) {
	c := NewControls(scene.DefaultPalette)
	c.growToggles(2, 1)
	firstChannel, firstEpoch := c.channelToggles[0], c.epochToggles[0]
	c.growToggles(40, 30)
	if len(c.channelToggles) != 40 || len(c.epochToggles) != 30 {
		t.Fatalf("expected 40 and 30 toggles, got %d and %d", len(c.channelToggles), len(c.epochToggles))
	}
	if c.channelToggles[0] != firstChannel || c.epochToggles[0] != firstEpoch {
		t.Errorf("expected growing to keep existing toggles in place")
	}
	c.growToggles(3, 3)
	if len(c.channelToggles) != 40 {
		t.Errorf("expected toggles never to shrink, got %d", len(c.channelToggles))
	}
}
