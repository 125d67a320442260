package scale

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestLinearRoundTrip(t *testing.T) {
	type testcase struct {
		domain, rng [2]float64
	}
	for _, tc := range []testcase{
		{domain: [2]float64{0, 1}, rng: [2]float64{-0.5, 0.5}},
		{domain: [2]float64{-3, 17.5}, rng: [2]float64{400, 0}},
		{domain: [2]float64{1e6, 1e6 + 3}, rng: [2]float64{0, 1920}},
		{domain: [2]float64{10, -10}, rng: [2]float64{-1, 1}},
	} {
		l, err := New(tc.domain, tc.rng)
		if err != nil {
			t.Fatalf("expected scale over %v to be valid, got: %v", tc.domain, err)
		}
		for i := 0; i <= 100; i++ {
			x := tc.domain[0] + float64(i)/100*(tc.domain[1]-tc.domain[0])
			got := l.Invert(l.Apply(x))
			tolerance := 1e-9 * math.Max(1, math.Abs(x))
			if math.Abs(got-x) > tolerance {
				t.Errorf("expected invert(apply(%g)) ≈ %g, got %g", x, x, got)
			}
		}
	}
}

func TestLinearApply(t *testing.T) {
	l := MustNew([2]float64{0, 10}, [2]float64{100, 200})
	if v := l.Apply(5); v != 150 {
		t.Errorf("expected 150, got %f", v)
	}
	if v := l.Apply(-10); v != 0 {
		t.Errorf("expected extrapolation to 0, got %f", v)
	}
	if v := l.Invert(175); v != 7.5 {
		t.Errorf("expected 7.5, got %f", v)
	}
}

func TestLinearDegenerate(t *testing.T) {
	_, err := New([2]float64{3, 3}, [2]float64{0, 1})
	if !errors.Is(err, ErrDegenerateDomain) {
		t.Errorf("expected ErrDegenerateDomain, got: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected MustNew to panic on a degenerate domain")
		}
	}()
	MustNew([2]float64{1, 1}, [2]float64{0, 1})
}

func TestTicks(t *testing.T) {
	type testcase struct {
		name     string
		domain   [2]float64
		count    int
		padding  int
		expected []float64
	}
	for _, tc := range []testcase{
		{
			name:     "integer steps",
			domain:   [2]float64{0, 10},
			count:    5,
			expected: []float64{0, 2, 4, 6, 8, 10},
		},
		{
			name:     "padding drops both ends",
			domain:   [2]float64{0, 10},
			count:    5,
			padding:  1,
			expected: []float64{2, 4, 6, 8},
		},
		{
			name:     "fractional steps",
			domain:   [2]float64{0, 1},
			count:    5,
			expected: []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
		},
		{
			name:     "reversed domain",
			domain:   [2]float64{10, 0},
			count:    5,
			expected: []float64{10, 8, 6, 4, 2, 0},
		},
		{
			name:     "unaligned domain",
			domain:   [2]float64{0.3, 4.7},
			count:    4,
			expected: []float64{1, 2, 3, 4},
		},
		{
			name:     "padding consumes everything",
			domain:   [2]float64{0, 10},
			count:    2,
			padding:  2,
			expected: nil,
		},
		{
			name:     "zero count",
			domain:   [2]float64{0, 10},
			count:    0,
			expected: nil,
		},
		{
			name:     "single point",
			domain:   [2]float64{4, 4},
			count:    10,
			expected: []float64{4},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Ticks(tc.domain, tc.count, tc.padding)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("expected ticks %v, got %v", tc.expected, got)
			}
		})
	}
}
