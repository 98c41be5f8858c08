package command

import (
	"github.com/google/uuid"

	"github.com/espinet/byebug/pkg/breakpoint"
	"github.com/espinet/byebug/pkg/iface"
)

// State is the per-stop session record. The driver builds a fresh one for
// every stop and discards it when the stop's loop exits; only the display
// list and breakpoint set outlive it.
type State struct {
	// ID tags log records for this stop.
	ID string

	Commands    []*Bound
	Context     Context
	Display     *DisplayList
	Breakpoints *breakpoint.Set
	File        string
	Line        int
	Interface   iface.Interface

	// FramePos is the frame commands operate on; 0 is the newest frame.
	FramePos int
	// PreviousLine is the last line printed by a listing command, -1 when
	// unset.
	PreviousLine int

	control bool
	proceed bool
}

// NewState builds the session state for one debugger stop.
func NewState(intf iface.Interface, ctx Context, display *DisplayList, bps *breakpoint.Set, file string, line int) *State {
	return &State{
		ID:           uuid.NewString(),
		Context:      ctx,
		Display:      display,
		Breakpoints:  bps,
		File:         file,
		Line:         line,
		Interface:    intf,
		PreviousLine: -1,
	}
}

// NewControlState builds the state for a control session: no debuggee
// context, inert proceed latch, affirmative confirmations, no file.
func NewControlState(intf iface.Interface, display *DisplayList, bps *breakpoint.Set) *State {
	s := NewState(intf, nil, display, bps, "", 0)
	s.control = true
	return s
}

// Proceed sets the latch that ends the current loop and resumes the
// debuggee. The transition is one-way; control states ignore it entirely.
func (s *State) Proceed() {
	if s.control {
		return
	}
	s.proceed = true
}

// Proceeding reports whether the latch has been set.
func (s *State) Proceeding() bool {
	return s.proceed
}

// CurrentFile returns the file of the current stop. Control sessions have no
// file; asking for one aborts the clause.
func (s *State) CurrentFile() (string, error) {
	if s.control || s.File == "" {
		return "", ErrNoFileContext
	}
	return s.File, nil
}

// Print forwards to the transport.
func (s *State) Print(format string, args ...any) {
	s.Interface.Print(format, args...)
}

// ErrMsg forwards to the transport's error sink.
func (s *State) ErrMsg(format string, args ...any) {
	s.Interface.ErrMsg(format, args...)
}

// Confirm asks the user; control sessions always answer yes.
func (s *State) Confirm(prompt string) bool {
	if s.control {
		return true
	}
	return s.Interface.Confirm(prompt)
}
