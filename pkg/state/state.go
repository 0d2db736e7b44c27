// Package state holds the counters shared by all search workers.
package state

import "sync/atomic"

// State is the only memory workers share. All methods are lock-free and
// safe for concurrent use; Go atomics are sequentially consistent, so a
// successful TryClaimFound is observed by every later IsFound call.
type State struct {
	attempts atomic.Uint64
	found    atomic.Bool
}

// New returns an empty search state.
func New() *State {
	return &State{}
}

// AddAttempts adds n to the approximate attempt counter.
func (s *State) AddAttempts(n uint64) {
	s.attempts.Add(n)
}

// Attempts returns the current attempt count.
func (s *State) Attempts() uint64 {
	return s.attempts.Load()
}

// TryClaimFound flips the found flag from false to true. Exactly one caller
// over the lifetime of s gets true.
func (s *State) TryClaimFound() bool {
	return s.found.CompareAndSwap(false, true)
}

// IsFound reports whether some worker has claimed a match.
func (s *State) IsFound() bool {
	return s.found.Load()
}
