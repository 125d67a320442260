package backend

import (
	"errors"
	"strings"
	"testing"
)

const testManifest = `
channelMetadata:
  - name: Fp1
    seriesRange: [-50, 50]
  - index: 2
    name: Cz
channels:
  - traces:
      - chunks:
          - interval: [0, 2]
            values: [1, 2, 3, 4]
          - interval: [2, 4]
            values: [5, 6]
            filters: [hp-1]
  - index: 2
    traces:
      - type: line
        chunks:
          - interval: [0, 4]
            values: [3, 3]
epochs:
  - onset: 1
    duration: 0.5
    type: blink
    channels: all
  - onset: 3
    duration: 1
    type: spike
    channels: [0, 2]
`

func TestDecodeManifest(t *testing.T) {
	ds, err := DecodeManifest(strings.NewReader(testManifest))
	if err != nil {
		t.Fatalf("expected manifest to decode, got %v", err)
	}
	if len(ds.Channels) != 2 || ds.Channels[1].Index != 2 {
		t.Fatalf("expected channels 0 and 2, got %+v", ds.Channels)
	}
	tr := ds.Channels[0].Traces[0]
	if tr.Type != TraceLine || len(tr.Chunks) != 2 || tr.Chunks[1].Filters[0] != "hp-1" {
		t.Errorf("unexpected trace %+v", tr)
	}
	if meta, ok := ds.Metadata(0); !ok || meta.SeriesRange != (Interval{-50, 50}) {
		t.Errorf("expected Fp1 range, got %v ok=%v", meta, ok)
	}
	if _, ok := ds.Metadata(1); ok {
		t.Errorf("expected channel 1 metadata to be absent")
	}
	// A flat channel without a range gets one padded around its value.
	if meta, ok := ds.Metadata(2); !ok || meta.SeriesRange != (Interval{2, 4}) {
		t.Errorf("expected computed range [2,4], got %v ok=%v", meta, ok)
	}
	if len(ds.Epochs) != 2 || !ds.Epochs[0].All || ds.Epochs[1].All || len(ds.Epochs[1].Channels) != 2 {
		t.Errorf("unexpected epochs %+v", ds.Epochs)
	}
}

func TestDecodeManifestJSON(t *testing.T) {
	doc := `{"channels": [{"traces": [{"chunks": [{"interval": [0, 1], "values": [0.5]}]}]}]}`
	ds, err := DecodeManifest(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("expected JSON manifest to decode, got %v", err)
	}
	if !ds.Initialized() {
		t.Errorf("expected a channel")
	}
}

func TestDecodeManifestErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"bad interval": "channels: [{traces: [{chunks: [{interval: [2, 1], values: [1]}]}]}]",
		"overlap":      "channels: [{traces: [{chunks: [{interval: [0, 2]}, {interval: [1, 3]}]}]}]",
		"bad epoch":    "epochs: [{onset: 1, duration: 1, channels: some}]",
	} {
		if _, err := DecodeManifest(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	_, err := DecodeManifest(strings.NewReader("channels: [{traces: [{chunks: [{interval: [0]}]}]}]"))
	if !errors.Is(err, errBadInterval) {
		t.Errorf("expected errBadInterval, got %v", err)
	}
}
