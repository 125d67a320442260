package scene

import (
	"hash/fnv"
	"image/color"
)

// DefaultPalette colours channels in order of their index.
var DefaultPalette = []color.NRGBA{
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff}, // #a4633a
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, // #857625
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, // #51854d
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, // #2b7fa8
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, // #726cae
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, // #975f91
	{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}, // #c0392b
	{R: 0x16, G: 0xa0, B: 0x85, A: 0xff}, // #16a085
}

var (
	AxisColor    = color.NRGBA{A: 0xff}
	CursorColor  = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	OutsideColor = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

// ChannelColor picks a stable colour for a channel index.
func ChannelColor(palette []color.NRGBA, index int) color.NRGBA {
	if len(palette) == 0 {
		return AxisColor
	}
	if index < 0 {
		index = -index
	}
	return palette[index%len(palette)]
}

// EpochColor picks a stable colour for an epoch type, so every epoch of the
// same type shares a colour across frames and datasets.
func EpochColor(palette []color.NRGBA, epochType string) color.NRGBA {
	if len(palette) == 0 {
		return OutsideColor
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(epochType))
	return palette[h.Sum32()%uint32(len(palette))]
}
