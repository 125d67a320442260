// Package scale provides the linear domain to range mapping used to place
// every sample, tick, and epoch on screen.
package scale

import (
	"errors"
	"fmt"
)

// ErrDegenerateDomain is returned when a scale is constructed over a domain of
// zero width. Such a scale has no inverse.
var ErrDegenerateDomain = errors.New("degenerate scale domain")

// Linear is an affine mapping from Domain to Range. The zero value is not
// usable; construct one with New.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// New returns the linear scale mapping domain onto rng.
func New(domain, rng [2]float64) (Linear, error) {
	if domain[0] == domain[1] {
		return Linear{}, fmt.Errorf("domain [%g,%g]: %w", domain[0], domain[1], ErrDegenerateDomain)
	}
	return Linear{Domain: domain, Range: rng}, nil
}

// MustNew is like New, but panics on a degenerate domain. It is meant for
// callers that have already guarded their inputs.
func MustNew(domain, rng [2]float64) Linear {
	l, err := New(domain, rng)
	if err != nil {
		panic(err)
	}
	return l
}

// Apply maps x from the domain into the range.
func (l Linear) Apply(x float64) float64 {
	d0, d1 := l.Domain[0], l.Domain[1]
	r0, r1 := l.Range[0], l.Range[1]
	return r0 + (x-d0)/(d1-d0)*(r1-r0)
}

// Invert maps y from the range back into the domain. A scale with a
// zero-width range collapses every domain value onto one point, so Invert
// returns the start of the domain.
func (l Linear) Invert(y float64) float64 {
	d0, d1 := l.Domain[0], l.Domain[1]
	r0, r1 := l.Range[0], l.Range[1]
	if r0 == r1 {
		return d0
	}
	return d0 + (y-r0)/(r1-r0)*(d1-d0)
}

// Ticks returns nice tick values over the scale's domain. See the package
// level Ticks function for the meaning of the arguments.
func (l Linear) Ticks(count, padding int) []float64 {
	return Ticks(l.Domain, count, padding)
}
