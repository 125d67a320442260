package backend

import "sync/atomic"

var chunkCounter atomic.Uint64

// Chunk is a fixed run of uniformly spaced samples covering Interval. Sample i
// lies at Interval[0] + i/len(Values)*Interval.Width(). Chunks are never
// mutated after construction; any change in filtering or resampling produces
// a new chunk with a new ID.
type Chunk struct {
	ID           uint64
	Interval     Interval
	Values       []float64
	Downsampling int
	Cutoff       float64
	Filters      []string
}

// NewChunk builds a chunk with a fresh identity.
func NewChunk(interval Interval, values []float64, downsampling int, cutoff float64, filters ...string) *Chunk {
	return &Chunk{
		ID:           chunkCounter.Add(1),
		Interval:     interval,
		Values:       values,
		Downsampling: downsampling,
		Cutoff:       cutoff,
		Filters:      filters,
	}
}

// Len returns the number of samples in the chunk.
func (c *Chunk) Len() int {
	return len(c.Values)
}

// TimeAt returns the time of the sample at index.
func (c *Chunk) TimeAt(index int) float64 {
	return c.Interval[0] + float64(index)/float64(len(c.Values))*c.Interval.Width()
}

// Derive returns a copy of the chunk carrying the given filter tags under a
// new identity. The sample slice is shared, since neither chunk mutates it.
func (c *Chunk) Derive(values []float64, filters ...string) *Chunk {
	if values == nil {
		values = c.Values
	}
	return NewChunk(c.Interval, values, c.Downsampling, c.Cutoff, filters...)
}
