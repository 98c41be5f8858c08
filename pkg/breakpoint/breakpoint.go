// Package breakpoint provides the ordered, 1-indexed breakpoint set consumed
// by the command processors. Breakpoint installation into the execution
// engine is out of scope; the set only tracks what the user has asked for.
package breakpoint

import "sync"

type Breakpoint struct {
	Number    int
	File      string
	Line      int
	Enabled   bool
	Condition string
	HitCount  int
}

// Set is an ordered collection of breakpoints. Numbers are assigned once and
// never reused, so deleting breakpoint 2 leaves a gap rather than renumbering.
type Set struct {
	mu   sync.Mutex
	next int
	list []*Breakpoint
}

func NewSet() *Set {
	return &Set{}
}

// Add appends a new enabled breakpoint and assigns it the next number.
func (s *Set) Add(file string, line int) *Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	bp := &Breakpoint{Number: s.next, File: file, Line: line, Enabled: true}
	s.list = append(s.list, bp)
	return bp
}

// Get returns the breakpoint with the given number, or nil.
func (s *Set) Get(number int) *Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, bp := range s.list {
		if bp.Number == number {
			return bp
		}
	}
	return nil
}

// Remove deletes the breakpoint with the given number. It reports whether a
// breakpoint was removed.
func (s *Set) Remove(number int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, bp := range s.list {
		if bp.Number == number {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every breakpoint. Numbering is not reset.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
}

func (s *Set) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list) == 0
}

// All returns the breakpoints in creation order.
func (s *Set) All() []*Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Breakpoint, len(s.list))
	copy(out, s.list)
	return out
}
