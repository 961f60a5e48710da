package concurrency

import (
	"sync"
)

// Holder identifies who currently occupies an admission slot.
type Holder struct {
	ID   string
	Name string
}

// AdmissionSlot is a process-wide single-occupancy slot. Oversized draw
// requests must acquire it before running; a second request observes the
// current holder instead of queueing.
type AdmissionSlot struct {
	mu     sync.Mutex
	held   bool
	holder Holder
}

// NewAdmissionSlot creates an empty slot.
func NewAdmissionSlot() *AdmissionSlot {
	return &AdmissionSlot{}
}

// TryAcquire claims the slot without blocking. On success it returns the
// caller's own identity; on failure it returns the holder that occupied
// the slot at the moment of the attempt.
func (s *AdmissionSlot) TryAcquire(holderID, holderName string) (Holder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return s.holder, false
	}
	s.held = true
	s.holder = Holder{ID: holderID, Name: holderName}
	return s.holder, true
}

// Holder returns the current occupant. The second return is false when
// the slot is free.
func (s *AdmissionSlot) Holder() (Holder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holder, s.held
}

// Release frees the slot. Releasing a free slot is a no-op.
func (s *AdmissionSlot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = false
	s.holder = Holder{}
}
