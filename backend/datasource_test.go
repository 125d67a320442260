package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func nextSession(t *testing.T, sessions <-chan Session) Session {
	t.Helper()
	select {
	case s := <-sessions:
		return s
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a session")
		return Session{}
	}
}

func newTestDatasource(t *testing.T) (*Datasource, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	d, err := NewDatasource(ctx, nil)
	if err != nil {
		t.Fatalf("failed creating datasource: %v", err)
	}
	return d, ctx
}

func TestDatasourceSessions(t *testing.T) {
	d, ctx := newTestDatasource(t)
	sessions := d.Sessions(ctx)
	d.UseDataset("synthetic", Synthetic(DefaultSyntheticOptions()))
	first := nextSession(t, sessions)
	if first.ID == "" || first.Err != nil || !first.Data.Initialized() {
		t.Fatalf("unexpected first session %+v", first)
	}
	firstChunk := first.Data.Channels[0].Traces[0].Chunks[0]

	d.SetFilters(FilterSelection{HighPass: "hp-1"})
	second := nextSession(t, sessions)
	if second.ID != first.ID {
		t.Errorf("expected refiltering to keep session id %q, got %q", first.ID, second.ID)
	}
	secondChunk := second.Data.Channels[0].Traces[0].Chunks[0]
	if secondChunk.ID == firstChunk.ID {
		t.Errorf("expected refiltered chunks to get new ids")
	}
	if second.Filters.HighPass != "hp-1" {
		t.Errorf("expected session to report the filter selection, got %+v", second.Filters)
	}

	late := d.Sessions(ctx)
	if s := nextSession(t, late); s.Data != second.Data {
		t.Errorf("expected a late subscriber to get the current session")
	}
}

func TestDatasourceKeepsNewest(t *testing.T) {
	d, ctx := newTestDatasource(t)
	sessions := d.Sessions(ctx)
	for i := 0; i < 5; i++ {
		d.UseDataset("synthetic", Synthetic(DefaultSyntheticOptions()))
	}
	if s := nextSession(t, sessions); s.ID != d.Current().ID {
		t.Errorf("expected the newest session, got %q want %q", s.ID, d.Current().ID)
	}
}

func TestDatasourceLoadAndReload(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "data.yaml")
	epochsPath := SiblingEpochs(manifestPath)
	if epochsPath != filepath.Join(dir, "data.epochs.csv") {
		t.Fatalf("unexpected epochs path %q", epochsPath)
	}
	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(epochsPath, []byte("5,1,blink,all\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, ctx := newTestDatasource(t)
	sessions := d.Sessions(ctx)
	if err := d.Load(manifestPath, epochsPath); err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	loaded := nextSession(t, sessions)
	if len(loaded.Data.Epochs) != 3 {
		t.Fatalf("expected manifest and CSV epochs, got %d", len(loaded.Data.Epochs))
	}

	f, err := os.OpenFile(epochsPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("7,1,spike,0\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	reloaded := nextSession(t, sessions)
	if reloaded.ID != loaded.ID {
		t.Errorf("expected reload to keep the session id")
	}
	if len(reloaded.Data.Epochs) != 4 {
		t.Errorf("expected appended epoch to appear, got %d", len(reloaded.Data.Epochs))
	}
}

func TestDatasourceLoadError(t *testing.T) {
	d, ctx := newTestDatasource(t)
	sessions := d.Sessions(ctx)
	err := d.Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err == nil {
		t.Fatalf("expected missing manifest to fail")
	}
	if s := nextSession(t, sessions); s.Err == nil {
		t.Errorf("expected the session to carry the error")
	}
}

func TestDatasourceLoadErrorKeepsSession(t *testing.T) {
	d, ctx := newTestDatasource(t)
	sessions := d.Sessions(ctx)
	d.UseDataset("synthetic", Synthetic(DefaultSyntheticOptions()))
	shown := nextSession(t, sessions)
	if err := d.Load(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Fatalf("expected missing manifest to fail")
	}
	failed := nextSession(t, sessions)
	if failed.Err == nil {
		t.Errorf("expected the session to carry the error")
	}
	if failed.ID != shown.ID {
		t.Errorf("expected a failed load to keep session id %q, got %q", shown.ID, failed.ID)
	}
	if failed.Data != shown.Data {
		t.Errorf("expected a failed load to keep the shown data")
	}
	if failed.Source != "synthetic" {
		t.Errorf("expected source to stay %q, got %q", "synthetic", failed.Source)
	}
	if failed.Revision <= shown.Revision {
		t.Errorf("expected revision to advance past %d, got %d", shown.Revision, failed.Revision)
	}
}

func TestDatasourceLoadUnterminatedEpochs(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "data.yaml")
	epochsPath := SiblingEpochs(manifestPath)
	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(epochsPath, []byte("onset,duration,type\n5,1,blink,all"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, ctx := newTestDatasource(t)
	sessions := d.Sessions(ctx)
	if err := d.Load(manifestPath, epochsPath); err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	loaded := nextSession(t, sessions)
	if len(loaded.Data.Epochs) != 3 {
		t.Fatalf("expected the final unterminated epoch to load, got %d epochs", len(loaded.Data.Epochs))
	}

	f, err := os.OpenFile(epochsPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("\n7,1,spike,0"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	// The reload first leaves the torn line out, then reads it once writes
	// have stopped.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-sessions:
			if s.ID != loaded.ID {
				t.Fatalf("expected reloads to keep the session id")
			}
			if len(s.Data.Epochs) == 4 {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for the unterminated epoch after reload")
		}
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	opts := DefaultSyntheticOptions()
	a, b := Synthetic(opts), Synthetic(opts)
	va := a.Channels[3].Traces[0].Chunks[2].Values
	vb := b.Channels[3].Traces[0].Chunks[2].Values
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("expected identical samples at %d, got %v and %v", i, va[i], vb[i])
		}
	}
	domain, ok := a.Domain()
	if !ok || domain != (Interval{0, opts.Duration}) {
		t.Errorf("expected domain [0,%v], got %v", opts.Duration, domain)
	}
	if len(a.Epochs) != opts.Epochs {
		t.Errorf("expected %d epochs, got %d", opts.Epochs, len(a.Epochs))
	}
}
