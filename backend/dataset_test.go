package backend

import "testing"

func TestDatasetMetadataSparse(t *testing.T) {
	ds := &Dataset{}
	ds.SetMetadata(2, ChannelMetadata{Name: "C3", SeriesRange: Interval{-1, 1}})
	if _, ok := ds.Metadata(0); ok {
		t.Errorf("expected metadata 0 to be absent")
	}
	if meta, ok := ds.Metadata(2); !ok || meta.Name != "C3" {
		t.Errorf("expected metadata for channel 2, got %v ok=%v", meta, ok)
	}
	if _, ok := ds.Metadata(7); ok {
		t.Errorf("expected out of range metadata to be absent")
	}
	var nilDS *Dataset
	if _, ok := nilDS.Metadata(0); ok {
		t.Errorf("expected nil dataset to have no metadata")
	}
}

func TestDatasetMetadataLiteral(t *testing.T) {
	ds := &Dataset{ChannelMetadata: []ChannelMetadata{{Name: "a"}, {Name: "b"}}}
	if meta, ok := ds.Metadata(1); !ok || meta.Name != "b" {
		t.Errorf("expected literal metadata to be present, got %v ok=%v", meta, ok)
	}
	ds.SetMetadata(3, ChannelMetadata{Name: "d"})
	if _, ok := ds.Metadata(0); !ok {
		t.Errorf("expected existing metadata to survive growth")
	}
	if _, ok := ds.Metadata(2); ok {
		t.Errorf("expected skipped metadata to be absent")
	}
}

func TestDatasetDomain(t *testing.T) {
	ds := &Dataset{Channels: []Channel{
		{Index: 0, Traces: []Trace{twoChunkTrace()}},
		{Index: 1, Traces: []Trace{{Chunks: []*Chunk{NewChunk(Interval{-3, 1}, []float64{0}, 1, 0)}}}},
		{Index: 2},
	}}
	domain, ok := ds.Domain()
	if !ok || domain != (Interval{-3, 8}) {
		t.Errorf("expected domain [-3,8], got %v ok=%v", domain, ok)
	}
	if _, ok := (&Dataset{}).Domain(); ok {
		t.Errorf("expected empty dataset to have no domain")
	}
	if ch, ok := ds.Channel(1); !ok || ch.Index != 1 {
		t.Errorf("expected to find channel 1")
	}
}
