package main

import (
	"math"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/config"
)

func testOptions() options {
	return options{
		width:     800,
		height:    400,
		from:      math.NaN(),
		to:        math.NaN(),
		cursor:    math.NaN(),
		amplitude: 1,
		repeat:    2,
	}
}

func TestComposeUsesCacheOnRepeat(t *testing.T) {
	cfg := config.Default()
	ds := backend.Synthetic(backend.DefaultSyntheticOptions())
	rep, err := compose(cfg, ds, testOptions())
	if err != nil {
		t.Fatalf("failed composing: %v", err)
	}
	if len(rep.scene.Bands) != cfg.Viewport.Limit {
		t.Errorf("expected %d bands, got %d", cfg.Viewport.Limit, len(rep.scene.Bands))
	}
	if rep.stats.Misses == 0 || rep.stats.Hits != rep.stats.Misses {
		t.Errorf("expected the second compose to hit every entry the first computed, got %+v", rep.stats)
	}
}

func TestComposeInterval(t *testing.T) {
	cfg := config.Default()
	ds := backend.Synthetic(backend.DefaultSyntheticOptions())
	opts := testOptions()
	opts.from, opts.to = 10, 20
	opts.cursor = 15
	rep, err := compose(cfg, ds, opts)
	if err != nil {
		t.Fatalf("failed composing: %v", err)
	}
	if rep.state.Interval != (backend.Interval{10, 20}) {
		t.Errorf("expected interval [10,20], got %v", rep.state.Interval)
	}
	if !rep.scene.CursorSet || len(rep.scene.Readout) == 0 {
		t.Errorf("expected a cursor readout at 15")
	}
	opts.from, opts.to = 5, 5
	if _, err := compose(cfg, ds, opts); err == nil {
		t.Errorf("expected a degenerate interval to be rejected")
	}
}

func TestRender(t *testing.T) {
	cfg := config.Default()
	ds := backend.Synthetic(backend.DefaultSyntheticOptions())
	rep, err := compose(cfg, ds, testOptions())
	if err != nil {
		t.Fatalf("failed composing: %v", err)
	}
	rep.source = "synthetic"
	out := rep.render()
	for _, want := range []string{"seriesview frame", "synthetic", "Showing 1 to 6 of 16", "Ch 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, out)
		}
	}
}
