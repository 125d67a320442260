package viewport

import (
	"fmt"

	"git.sr.ht/~whereswaldon/seriesview/backend"
)

// ClampOffset limits a page offset to [0, max(0, total-limit)]. It is
// idempotent.
func ClampOffset(offset, total, limit int) int {
	return clamp(offset, 0, max(0, total-limit))
}

// Step names one of the channel pager's controls.
type Step uint8

const (
	StepPrevPage Step = iota
	StepPrevOne
	StepNextOne
	StepNextPage
)

// Apply returns the clamped offset reached by taking the step from offset.
func (s Step) Apply(offset, total, limit int) int {
	switch s {
	case StepPrevPage:
		offset -= limit
	case StepPrevOne:
		offset--
	case StepNextOne:
		offset++
	case StepNextPage:
		offset += limit
	}
	return ClampOffset(offset, total, limit)
}

func PrevPage(offset, total, limit int) int { return StepPrevPage.Apply(offset, total, limit) }
func PrevOne(offset, total, limit int) int  { return StepPrevOne.Apply(offset, total, limit) }
func NextOne(offset, total, limit int) int  { return StepNextOne.Apply(offset, total, limit) }
func NextPage(offset, total, limit int) int { return StepNextPage.Apply(offset, total, limit) }

// VisibleChannels drops hidden channels, then keeps those whose index falls
// in the page [offset, offset+limit) after clamping offset against total.
// Channels keep their original Index; nothing is renumbered.
func VisibleChannels(channels []backend.Channel, hidden map[int]bool, offset, limit, total int) []backend.Channel {
	limit = max(0, limit)
	start := ClampOffset(offset, total, limit)
	end := start + limit
	visible := make([]backend.Channel, 0, min(limit, len(channels)))
	for _, ch := range channels {
		if hidden[ch.Index] {
			continue
		}
		if ch.Index < start || ch.Index >= end {
			continue
		}
		visible = append(visible, ch)
	}
	return visible
}

// PageLabel describes the current page with one-based channel numbers.
func PageLabel(offset, limit, total int) string {
	if total == 0 {
		return "No channels"
	}
	start := ClampOffset(offset, total, limit)
	return fmt.Sprintf("Showing %d to %d of %d", start+1, min(start+limit, total), total)
}
