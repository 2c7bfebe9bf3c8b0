package render

import (
	"sync"
)

// Surface tracks the visibility of capture-excluded controls (the
// download/preview buttons on the invoice view). Exports must hide them
// before capturing and restore them afterwards, on the failure path too,
// so visibility toggling is modeled as scoped acquisition: AcquireCapture
// hides the controls and returns the release that restores them.
type Surface struct {
	mu     sync.Mutex
	hidden bool
}

func NewSurface() *Surface {
	return &Surface{}
}

// ControlsHidden reports whether capture-excluded controls are hidden.
func (s *Surface) ControlsHidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

// AcquireCapture hides the controls and returns the matching release.
// Callers must defer the release so it runs even when capture fails.
func (s *Surface) AcquireCapture() (release func()) {
	s.mu.Lock()
	prev := s.hidden
	s.hidden = true
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hidden = prev
			s.mu.Unlock()
		})
	}
}
