package backend

import (
	"slices"
	"testing"
)

func TestFilterSelectionTags(t *testing.T) {
	sel := FilterSelection{HighPass: "hp-1", LowPass: FilterNone}
	if tags := sel.Tags(); !slices.Equal(tags, []string{"hp-1"}) {
		t.Errorf("expected [hp-1], got %v", tags)
	}
	if tags := (FilterSelection{}).Tags(); len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
	if p, ok := FindPreset(LowPassFilters, "lp-30"); !ok || p.Label != "Low Pass 30 Hz" {
		t.Errorf("expected to find lp-30, got %v ok=%v", p, ok)
	}
}

func TestApplyFiltersReidentifies(t *testing.T) {
	raw := &Dataset{Channels: []Channel{{Index: 4, Traces: []Trace{twoChunkTrace()}}}}
	raw.SetMetadata(4, ChannelMetadata{Name: "O1", SeriesRange: Interval{-5, 5}})
	out := ApplyFilters(raw, TagFilter{}, FilterSelection{HighPass: "hp-5", LowPass: "lp-40"})
	before := raw.Channels[0].Traces[0].Chunks[0]
	after := out.Channels[0].Traces[0].Chunks[0]
	if before.ID == after.ID {
		t.Errorf("expected filtered chunk to get a new id")
	}
	if !slices.Equal(after.Filters, []string{"hp-5", "lp-40"}) {
		t.Errorf("expected filter tags, got %v", after.Filters)
	}
	if len(before.Filters) != 0 {
		t.Errorf("expected raw chunk to be untouched, got %v", before.Filters)
	}
	if out.Channels[0].Index != 4 {
		t.Errorf("expected channel index to be kept, got %d", out.Channels[0].Index)
	}
	if meta, ok := out.Metadata(4); !ok || meta.Name != "O1" {
		t.Errorf("expected metadata to carry over")
	}
	if _, ok := out.Metadata(0); ok {
		t.Errorf("expected absent metadata to stay absent")
	}
}
