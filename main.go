package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/config"
	"git.sr.ht/~whereswaldon/seriesview/logging"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	manifest := flag.String("manifest", "", "dataset manifest to open (YAML or JSON)")
	epochs := flag.String("epochs", "", "epochs CSV to overlay (defaults to the manifest name with .epochs.csv)")
	logFile := flag.String("log", "", "append logs to this file instead of stderr")
	synthetic := flag.Bool("synthetic", false, "start with a generated dataset")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed loading config: %v\n", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *manifest != "" {
		cfg.Data.Manifest = *manifest
	}
	if *epochs != "" {
		cfg.Data.Epochs = *epochs
	}
	cleanup, err := logging.Setup(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed setting up logging: %v\n", err)
		os.Exit(1)
	}

	go func() {
		w := app.NewWindow(app.Title("seriesview"), app.Size(unit.Dp(1280), unit.Dp(800)))
		err := loop(w, cfg, *synthetic)
		cleanup()
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// openInitial publishes the dataset named by the configuration, falling back
// to a synthetic one when nothing is named or requested.
func openInitial(ds *backend.Datasource, cfg *config.Config, synthetic bool) {
	ds.SetFilters(backend.FilterSelection{
		HighPass: cfg.Filters.HighPass,
		LowPass:  cfg.Filters.LowPass,
	})
	if cfg.Data.Manifest != "" && !synthetic {
		epochsPath := cfg.Data.Epochs
		if epochsPath == "" {
			epochsPath = backend.SiblingEpochs(cfg.Data.Manifest)
		}
		if err := ds.Load(cfg.Data.Manifest, epochsPath); err != nil {
			log.Printf("failed opening %q: %v", cfg.Data.Manifest, err)
		}
		return
	}
	if !synthetic {
		return
	}
	opts := backend.DefaultSyntheticOptions()
	opts.Channels = cfg.Data.SyntheticChannels
	opts.Duration = float64(cfg.Data.SyntheticSeconds)
	ds.UseDataset("synthetic", backend.Synthetic(opts))
}

func loop(w *app.Window, cfg *config.Config, synthetic bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bundle, err := backend.NewBundle(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed creating backend: %w", err)
	}
	defer bundle.Datasource.Close()
	openInitial(bundle.Datasource, cfg, synthetic)

	expl := explorer.NewExplorer(w)
	ui := NewUI(backend.NewWindowState(ctx, bundle, w), expl, cfg)
	defer ui.Close()

	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
