package backend

import (
	"fmt"
	"math"
	"math/rand"
)

// SyntheticOptions controls the shape of a generated dataset.
type SyntheticOptions struct {
	Channels     int
	Duration     float64
	ChunkSeconds float64
	SampleRate   float64
	Epochs       int
	Seed         int64
}

// DefaultSyntheticOptions returns a small dataset suitable for a demo.
func DefaultSyntheticOptions() SyntheticOptions {
	return SyntheticOptions{
		Channels:     16,
		Duration:     60,
		ChunkSeconds: 5,
		SampleRate:   128,
		Epochs:       12,
		Seed:         1,
	}
}

// Synthetic builds a deterministic dataset of noisy sine mixtures, one trace
// per channel, split into equal chunks, with randomly placed epochs.
func Synthetic(opts SyntheticOptions) *Dataset {
	rng := rand.New(rand.NewSource(opts.Seed))
	ds := &Dataset{}
	samplesPerChunk := max(1, int(opts.ChunkSeconds*opts.SampleRate))
	for c := 0; c < opts.Channels; c++ {
		freq := 1 + rng.Float64()*9
		amp := 20 + rng.Float64()*60
		phase := rng.Float64() * 2 * math.Pi
		var tr Trace
		tr.Type = TraceLine
		for t0 := 0.0; t0 < opts.Duration; t0 += opts.ChunkSeconds {
			t1 := min(t0+opts.ChunkSeconds, opts.Duration)
			n := max(1, int(float64(samplesPerChunk)*(t1-t0)/opts.ChunkSeconds))
			values := make([]float64, n)
			for i := range values {
				t := t0 + float64(i)/float64(n)*(t1-t0)
				values[i] = amp*math.Sin(2*math.Pi*freq*t+phase) + rng.NormFloat64()*amp*0.1
			}
			tr.Chunks = append(tr.Chunks, NewChunk(Interval{t0, t1}, values, 1, 0))
		}
		ds.Channels = append(ds.Channels, Channel{Index: c, Traces: []Trace{tr}})
		ds.SetMetadata(c, ChannelMetadata{
			Name:        fmt.Sprintf("Ch %d", c+1),
			SeriesRange: Interval{-100, 100},
		})
	}
	types := []string{"blink", "spike", "artifact"}
	for e := 0; e < opts.Epochs; e++ {
		epoch := Epoch{
			Onset:    rng.Float64() * opts.Duration,
			Duration: 0.2 + rng.Float64()*2,
			Type:     types[rng.Intn(len(types))],
			All:      rng.Intn(2) == 0,
		}
		if !epoch.All && opts.Channels > 0 {
			epoch.Channels = []int{rng.Intn(opts.Channels)}
		}
		ds.Epochs = append(ds.Epochs, epoch)
	}
	return ds
}
