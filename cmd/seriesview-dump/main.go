package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/config"
	"git.sr.ht/~whereswaldon/seriesview/geometry"
	"git.sr.ht/~whereswaldon/seriesview/scene"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: compose one frame of a dataset without a window and describe it
Usage:

 %[1]s -manifest data.yaml -from 10 -to 20 -cursor 12.5

With no manifest a synthetic dataset is used.

`, os.Args[0])
	flag.PrintDefaults()
}

// options are the frame parameters taken from the command line.
type options struct {
	manifest, epochs string
	width, height    float64
	from, to         float64
	cursor           float64
	offset           int
	amplitude        float64
	filters          backend.FilterSelection
	repeat           int
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "YAML configuration file")
	outputName := flag.String("output", "-", "output file for the report")
	var opts options
	flag.StringVar(&opts.manifest, "manifest", "", "dataset manifest (YAML or JSON)")
	flag.StringVar(&opts.epochs, "epochs", "", "epochs CSV (defaults to the manifest name with .epochs.csv)")
	flag.Float64Var(&opts.width, "width", 1200, "frame width in pixels")
	flag.Float64Var(&opts.height, "height", 600, "frame height in pixels")
	flag.Float64Var(&opts.from, "from", math.NaN(), "interval start in seconds (defaults to the configured fraction of the domain)")
	flag.Float64Var(&opts.to, "to", math.NaN(), "interval end in seconds")
	flag.Float64Var(&opts.cursor, "cursor", math.NaN(), "cursor time in seconds")
	flag.IntVar(&opts.offset, "offset", 0, "index of the first channel shown")
	flag.Float64Var(&opts.amplitude, "amplitude", 1, "amplitude scale")
	flag.StringVar(&opts.filters.HighPass, "high-pass", backend.FilterNone, "high pass filter preset")
	flag.StringVar(&opts.filters.LowPass, "low-pass", backend.FilterNone, "low pass filter preset")
	flag.IntVar(&opts.repeat, "repeat", 2, "compose the frame this many times to exercise the geometry cache")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("failed loading config: %v", err)
	}
	ds, source, err := loadDataset(cfg, opts)
	if err != nil {
		log.Fatalf("failed loading dataset: %v", err)
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	defer output.Close()

	rep, err := compose(cfg, ds, opts)
	if err != nil {
		log.Fatalf("failed composing frame: %v", err)
	}
	rep.source = source
	fmt.Fprintln(output, rep.render())
}

func loadDataset(cfg *config.Config, opts options) (*backend.Dataset, string, error) {
	if opts.manifest == "" {
		synth := backend.DefaultSyntheticOptions()
		synth.Channels = cfg.Data.SyntheticChannels
		synth.Duration = float64(cfg.Data.SyntheticSeconds)
		return backend.Synthetic(synth), "synthetic", nil
	}
	f, err := os.Open(opts.manifest)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	ds, err := backend.DecodeManifest(f)
	if err != nil {
		return nil, "", err
	}
	epochsPath := opts.epochs
	if epochsPath == "" {
		epochsPath = backend.SiblingEpochs(opts.manifest)
	}
	ef, err := os.Open(epochsPath)
	if err != nil {
		if opts.epochs != "" {
			return nil, "", err
		}
		return ds, opts.manifest, nil
	}
	defer ef.Close()
	epochs, err := backend.ReadEpochs(ef)
	if err != nil {
		return nil, "", err
	}
	ds.Epochs = append(ds.Epochs, epochs...)
	return ds, opts.manifest, nil
}

// compose builds the viewport state described by opts and composes it as
// many times as requested, reporting the last scene.
func compose(cfg *config.Config, raw *backend.Dataset, opts options) (report, error) {
	ds := backend.ApplyFilters(raw, backend.TagFilter{}, opts.filters)
	domain, ok := ds.Domain()
	if !ok {
		return report{}, fmt.Errorf("dataset has no samples")
	}
	actions := []viewport.Action{
		viewport.SetDomain{Domain: domain, Fraction: cfg.Viewport.InitialFraction},
		viewport.SetOffset{Offset: opts.offset, Total: len(ds.ChannelMetadata)},
	}
	if !math.IsNaN(opts.from) || !math.IsNaN(opts.to) {
		iv := backend.Interval{opts.from, opts.to}
		if math.IsNaN(iv[0]) {
			iv[0] = domain[0]
		}
		if math.IsNaN(iv[1]) {
			iv[1] = domain[1]
		}
		actions = append(actions, viewport.SetInterval{Interval: iv})
	}
	if opts.amplitude != 1 {
		actions = append(actions, viewport.SetAmplitudeScale{Factor: opts.amplitude})
	}
	if !math.IsNaN(opts.cursor) {
		actions = append(actions, viewport.SetCursor{Time: opts.cursor})
	}
	vc := viewport.NewController(viewport.NewState(cfg.Viewport.Limit), nil)
	defer vc.Close()
	for _, a := range actions {
		if err := vc.Dispatch(a); err != nil {
			return report{}, fmt.Errorf("%T: %w", a, err)
		}
	}

	cache := geometry.NewCache(cfg.Cache.Capacity)
	comp := scene.NewCompositor(cache, scene.Options{
		XTicks:       cfg.Render.XTicks,
		YTicks:       cfg.Render.YTicks,
		YTickPadding: cfg.Render.YTickPadding,
		EpochCap:     cfg.Render.EpochCap,
		EpochOpacity: cfg.Render.EpochOpacity,
		LineWidth:    cfg.Render.LineWidth,
		Palette:      scene.DefaultPalette,
	})
	st := vc.Snapshot()
	size := f32.Pt(float32(opts.width), float32(opts.height))
	var sc scene.Scene
	for i := 0; i < max(1, opts.repeat); i++ {
		sc = comp.Compose(st, ds, size)
	}
	return report{
		state:   st,
		dataset: ds,
		scene:   sc,
		stats:   cache.Stats(),
		filters: opts.filters,
	}, nil
}
