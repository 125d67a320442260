package main

import (
	"sync"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
)

type surfaceListener struct {
	move, release func(x float64)
}

// windowSurface receives pointer events for the whole window, so a drag that
// began on one widget keeps being tracked wherever the pointer goes. It
// reports positions in window pixels.
type windowSurface struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]surfaceListener
	lastX     float64
}

func newWindowSurface() *windowSurface {
	return &windowSurface{listeners: map[int]surfaceListener{}}
}

// Listen implements viewport.Surface.
func (s *windowSurface) Listen(move, release func(x float64)) (unlisten func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = surfaceListener{move: move, release: release}
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

func (s *windowSurface) listening() []surfaceListener {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]surfaceListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

// Add registers the surface as an event target over the current clip area.
// It must be called before any child widget is laid out.
func (s *windowSurface) Add(ops *op.Ops) {
	event.Op(ops, s)
}

// Update forwards this frame's pointer motion to the listeners. A cancelled
// pointer releases at its last known position.
func (s *windowSurface) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if e.Kind != pointer.Cancel {
			s.lastX = float64(e.Position.X)
		}
		switch e.Kind {
		case pointer.Drag:
			for _, l := range s.listening() {
				l.move(s.lastX)
			}
		case pointer.Release, pointer.Cancel:
			for _, l := range s.listening() {
				l.release(s.lastX)
			}
		}
	}
}
