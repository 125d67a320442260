package viewport

import (
	"testing"

	"git.sr.ht/~whereswaldon/seriesview/backend"
)

func channelsUpTo(n int) []backend.Channel {
	out := make([]backend.Channel, n)
	for i := range out {
		out[i] = backend.Channel{Index: i}
	}
	return out
}

func indices(channels []backend.Channel) []int {
	out := make([]int, len(channels))
	for i, ch := range channels {
		out[i] = ch.Index
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPaginationClamp(t *testing.T) {
	const total, limit = 20, 6
	offset := 0
	for i := 0; i < 10; i++ {
		offset = NextPage(offset, total, limit)
		if offset > total-limit {
			t.Fatalf("expected offset at most %d, got %d", total-limit, offset)
		}
	}
	if offset != 14 {
		t.Errorf("expected to settle at 14, got %d", offset)
	}
	for i := 0; i < 10; i++ {
		offset = PrevPage(offset, total, limit)
		if offset < 0 {
			t.Fatalf("expected offset at least 0, got %d", offset)
		}
	}
	if offset != 0 {
		t.Errorf("expected to settle at 0, got %d", offset)
	}
	if got := NextOne(13, total, limit); got != 14 {
		t.Errorf("expected NextOne(13) = 14, got %d", got)
	}
	if got := NextOne(14, total, limit); got != 14 {
		t.Errorf("expected NextOne(14) = 14, got %d", got)
	}
	if got := PrevOne(0, total, limit); got != 0 {
		t.Errorf("expected PrevOne(0) = 0, got %d", got)
	}
}

func TestClampOffsetIdempotent(t *testing.T) {
	for _, tc := range [][3]int{{-5, 20, 6}, {30, 20, 6}, {3, 4, 6}, {7, 20, 6}, {2, 0, 6}} {
		once := ClampOffset(tc[0], tc[1], tc[2])
		if twice := ClampOffset(once, tc[1], tc[2]); twice != once {
			t.Errorf("clamp of %v not idempotent: %d then %d", tc, once, twice)
		}
		if once < 0 || once > max(0, tc[1]) {
			t.Errorf("clamp of %v out of range: %d", tc, once)
		}
	}
}

func TestHiddenChannelIdentity(t *testing.T) {
	visible := VisibleChannels(channelsUpTo(4), map[int]bool{2: true}, 0, 6, 4)
	if got := indices(visible); !equalInts(got, []int{0, 1, 3}) {
		t.Errorf("expected [0 1 3], got %v", got)
	}
}

func TestVisibleChannelsPage(t *testing.T) {
	visible := VisibleChannels(channelsUpTo(20), map[int]bool{8: true}, 6, 6, 20)
	if got := indices(visible); !equalInts(got, []int{6, 7, 9, 10, 11}) {
		t.Errorf("expected [6 7 9 10 11], got %v", got)
	}
	visible = VisibleChannels(channelsUpTo(20), nil, 100, 6, 20)
	if got := indices(visible); !equalInts(got, []int{14, 15, 16, 17, 18, 19}) {
		t.Errorf("expected last page, got %v", got)
	}
}

func TestPageLabel(t *testing.T) {
	for _, tc := range []struct {
		offset, limit, total int
		expected             string
	}{
		{0, 6, 20, "Showing 1 to 6 of 20"},
		{30, 6, 20, "Showing 15 to 20 of 20"},
		{0, 6, 4, "Showing 1 to 4 of 4"},
		{0, 6, 0, "No channels"},
	} {
		if got := PageLabel(tc.offset, tc.limit, tc.total); got != tc.expected {
			t.Errorf("expected %q, got %q", tc.expected, got)
		}
	}
}
