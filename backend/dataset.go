package backend

import "math"

// Interval is a closed time span [start, end] in seconds.
type Interval [2]float64

// Width returns end-start.
func (i Interval) Width() float64 {
	return i[1] - i[0]
}

// Contains reports whether t lies within the closed interval.
func (i Interval) Contains(t float64) bool {
	return i[0] <= t && t <= i[1]
}

const TraceLine = "line"

// Trace is one logical signal line within a channel. Its chunks are sorted by
// interval and never overlap.
type Trace struct {
	Type   string
	Chunks []*Chunk
}

// Channel is a named data source holding one or more traces. Index is the
// channel's identity within the dataset and is never renumbered.
type Channel struct {
	Index  int
	Traces []Trace
}

// ChannelMetadata describes a channel's display name and amplitude domain.
type ChannelMetadata struct {
	Name        string
	SeriesRange Interval
}

// Epoch is an annotated time interval. When All is set the epoch applies to
// every channel and Channels is ignored.
type Epoch struct {
	Onset    float64
	Duration float64
	Type     string
	Channels []int
	All      bool
}

// End returns onset+duration.
func (e Epoch) End() float64 {
	return e.Onset + e.Duration
}

// Covers reports whether the epoch applies to the channel with index.
func (e Epoch) Covers(index int) bool {
	if e.All {
		return true
	}
	for _, c := range e.Channels {
		if c == index {
			return true
		}
	}
	return false
}

// Dataset is the read-only view of everything the backend has produced. It is
// replaced wholesale whenever the backend refetches or refilters.
type Dataset struct {
	Channels        []Channel
	ChannelMetadata []ChannelMetadata
	Epochs          []Epoch
	// metadataPresent marks which ChannelMetadata entries were actually
	// provided. A nil slice means all of them were.
	metadataPresent []bool
}

// Initialized reports whether the dataset has anything to display.
func (d *Dataset) Initialized() bool {
	return d != nil && len(d.Channels) != 0
}

// Metadata returns the metadata for the channel with the given index. The
// second return is false if the backend did not describe that channel.
func (d *Dataset) Metadata(index int) (ChannelMetadata, bool) {
	if d == nil || index < 0 || index >= len(d.ChannelMetadata) {
		return ChannelMetadata{}, false
	}
	if d.metadataPresent != nil && !d.metadataPresent[index] {
		return ChannelMetadata{}, false
	}
	return d.ChannelMetadata[index], true
}

// SetMetadata records metadata for the channel at index, growing the
// metadata table as needed. Entries skipped over while growing are marked
// absent.
func (d *Dataset) SetMetadata(index int, meta ChannelMetadata) {
	if index < 0 {
		return
	}
	if d.metadataPresent == nil {
		d.metadataPresent = make([]bool, len(d.ChannelMetadata))
		for i := range d.metadataPresent {
			d.metadataPresent[i] = true
		}
	}
	for len(d.ChannelMetadata) <= index {
		d.ChannelMetadata = append(d.ChannelMetadata, ChannelMetadata{})
		d.metadataPresent = append(d.metadataPresent, false)
	}
	d.ChannelMetadata[index] = meta
	d.metadataPresent[index] = true
}

// Domain returns the span covered by every chunk of every trace. ok is false
// when the dataset holds no chunks.
func (d *Dataset) Domain() (domain Interval, ok bool) {
	if d == nil {
		return Interval{}, false
	}
	domain = Interval{math.Inf(1), math.Inf(-1)}
	for _, ch := range d.Channels {
		for _, tr := range ch.Traces {
			if len(tr.Chunks) == 0 {
				continue
			}
			trDomain := tr.Domain()
			domain[0] = min(domain[0], trDomain[0])
			domain[1] = max(domain[1], trDomain[1])
			ok = true
		}
	}
	if !ok {
		return Interval{}, false
	}
	return domain, true
}

// Channel returns the channel with the given index.
func (d *Dataset) Channel(index int) (Channel, bool) {
	for _, ch := range d.Channels {
		if ch.Index == index {
			return ch, true
		}
	}
	return Channel{}, false
}
