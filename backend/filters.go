package backend

// FilterPreset names one of the backend's filter configurations. The core
// never interprets a preset; it only forwards the key.
type FilterPreset struct {
	Key   string
	Label string
}

const FilterNone = "none"

var HighPassFilters = []FilterPreset{
	{Key: FilterNone, Label: "No High Pass Filter"},
	{Key: "hp-0.5", Label: "High Pass 0.5 Hz"},
	{Key: "hp-1", Label: "High Pass 1 Hz"},
	{Key: "hp-5", Label: "High Pass 5 Hz"},
	{Key: "hp-10", Label: "High Pass 10 Hz"},
}

var LowPassFilters = []FilterPreset{
	{Key: FilterNone, Label: "No Low Pass Filter"},
	{Key: "lp-15", Label: "Low Pass 15 Hz"},
	{Key: "lp-20", Label: "Low Pass 20 Hz"},
	{Key: "lp-30", Label: "Low Pass 30 Hz"},
	{Key: "lp-40", Label: "Low Pass 40 Hz"},
}

// FindPreset returns the preset with the given key.
func FindPreset(presets []FilterPreset, key string) (FilterPreset, bool) {
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return FilterPreset{}, false
}

// FilterSelection is the pair of presets applied to every chunk.
type FilterSelection struct {
	HighPass string
	LowPass  string
}

// Tags returns the filter keys that are actually active.
func (f FilterSelection) Tags() []string {
	var tags []string
	if f.HighPass != "" && f.HighPass != FilterNone {
		tags = append(tags, f.HighPass)
	}
	if f.LowPass != "" && f.LowPass != FilterNone {
		tags = append(tags, f.LowPass)
	}
	return tags
}

// ChunkFilter produces the chunk to display for a raw chunk under a filter
// selection. Implementations must return a new chunk rather than modifying
// raw.
type ChunkFilter interface {
	Filter(raw *Chunk, sel FilterSelection) *Chunk
}

// TagFilter is the default ChunkFilter. It leaves samples untouched and only
// records which presets were requested, leaving the signal processing to an
// external backend.
type TagFilter struct{}

func (TagFilter) Filter(raw *Chunk, sel FilterSelection) *Chunk {
	return raw.Derive(nil, sel.Tags()...)
}

// ApplyFilters returns a copy of ds whose chunks have been passed through f.
// Channel indices, metadata, and epochs are carried over unchanged.
func ApplyFilters(ds *Dataset, f ChunkFilter, sel FilterSelection) *Dataset {
	out := &Dataset{
		ChannelMetadata: ds.ChannelMetadata,
		Epochs:          ds.Epochs,
		metadataPresent: ds.metadataPresent,
		Channels:        make([]Channel, len(ds.Channels)),
	}
	for i, ch := range ds.Channels {
		traces := make([]Trace, len(ch.Traces))
		for j, tr := range ch.Traces {
			chunks := make([]*Chunk, len(tr.Chunks))
			for k, c := range tr.Chunks {
				chunks[k] = f.Filter(c, sel)
			}
			traces[j] = Trace{Type: tr.Type, Chunks: chunks}
		}
		out.Channels[i] = Channel{Index: ch.Index, Traces: traces}
	}
	return out
}
