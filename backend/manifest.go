package backend

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// manifest is the on-disk description of a dataset. It is YAML, and since
// JSON documents are valid YAML the same decoder accepts JSON exports.
type manifest struct {
	ChannelMetadata []manifestMetadata `yaml:"channelMetadata"`
	Channels        []manifestChannel  `yaml:"channels"`
	Epochs          []manifestEpoch    `yaml:"epochs"`
}

type manifestMetadata struct {
	Index       *int      `yaml:"index"`
	Name        string    `yaml:"name"`
	SeriesRange []float64 `yaml:"seriesRange"`
}

type manifestChannel struct {
	Index  *int            `yaml:"index"`
	Traces []manifestTrace `yaml:"traces"`
}

type manifestTrace struct {
	Type   string          `yaml:"type"`
	Chunks []manifestChunk `yaml:"chunks"`
}

type manifestChunk struct {
	Interval     []float64 `yaml:"interval"`
	Values       []float64 `yaml:"values"`
	Downsampling int       `yaml:"downsampling"`
	Cutoff       float64   `yaml:"cutoff"`
	Filters      []string  `yaml:"filters"`
}

type manifestEpoch struct {
	Onset    float64       `yaml:"onset"`
	Duration float64       `yaml:"duration"`
	Type     string        `yaml:"type"`
	Channels epochChannels `yaml:"channels"`
}

// epochChannels decodes either the scalar "all" or a list of channel indices.
type epochChannels struct {
	all     bool
	indices []int
}

func (e *epochChannels) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value != "all" {
			return fmt.Errorf("line %d: epoch channels must be \"all\" or a list, got %q", node.Line, node.Value)
		}
		e.all = true
		return nil
	}
	return node.Decode(&e.indices)
}

var errBadInterval = errors.New("interval must have exactly two increasing values")

// DecodeManifest reads a dataset manifest. Chunks are validated to be sorted
// and non-overlapping within each trace. Metadata without a usable series
// range gets one computed from the channel's samples.
func DecodeManifest(r io.Reader) (*Dataset, error) {
	var m manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed decoding manifest: %w", err)
	}
	ds := &Dataset{}
	for i, mc := range m.Channels {
		ch := Channel{Index: i}
		if mc.Index != nil {
			ch.Index = *mc.Index
		}
		for j, mt := range mc.Traces {
			tr := Trace{Type: mt.Type}
			if tr.Type == "" {
				tr.Type = TraceLine
			}
			prevEnd := math.Inf(-1)
			for k, mk := range mt.Chunks {
				if len(mk.Interval) != 2 || mk.Interval[0] >= mk.Interval[1] {
					return nil, fmt.Errorf("channel %d trace %d chunk %d: %w", ch.Index, j, k, errBadInterval)
				}
				if mk.Interval[0] < prevEnd {
					return nil, fmt.Errorf("channel %d trace %d chunk %d: chunks overlap or are unsorted", ch.Index, j, k)
				}
				prevEnd = mk.Interval[1]
				tr.Chunks = append(tr.Chunks, NewChunk(
					Interval{mk.Interval[0], mk.Interval[1]},
					mk.Values,
					mk.Downsampling,
					mk.Cutoff,
					mk.Filters...,
				))
			}
			ch.Traces = append(ch.Traces, tr)
		}
		ds.Channels = append(ds.Channels, ch)
	}
	for i, mm := range m.ChannelMetadata {
		index := i
		if mm.Index != nil {
			index = *mm.Index
		}
		meta := ChannelMetadata{Name: mm.Name}
		if len(mm.SeriesRange) == 2 && mm.SeriesRange[0] != mm.SeriesRange[1] {
			meta.SeriesRange = Interval{mm.SeriesRange[0], mm.SeriesRange[1]}
		} else if ch, ok := ds.Channel(index); ok {
			meta.SeriesRange = channelValueRange(ch)
		}
		ds.SetMetadata(index, meta)
	}
	for _, me := range m.Epochs {
		ds.Epochs = append(ds.Epochs, Epoch{
			Onset:    me.Onset,
			Duration: me.Duration,
			Type:     me.Type,
			Channels: me.Channels.indices,
			All:      me.Channels.all,
		})
	}
	return ds, nil
}

// channelValueRange returns the span of every sample in the channel, padded
// so that a flat signal still yields a usable range.
func channelValueRange(ch Channel) Interval {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, tr := range ch.Traces {
		if tMin, tMax, ok := tr.ValueRange(); ok {
			lo = min(lo, tMin)
			hi = max(hi, tMax)
		}
	}
	if math.IsInf(lo, 0) {
		return Interval{-1, 1}
	}
	if lo == hi {
		return Interval{lo - 1, hi + 1}
	}
	return Interval{lo, hi}
}
