// Package command defines the command registry capability: stateless
// descriptors, instances bound to a per-stop session state, and the built-in
// definitions the processors rely on.
package command

import "regexp"

// Handler executes a command against its session state. input is the raw
// clause text the descriptor matched (empty when auto-run).
type Handler func(s *State, input string) error

// Definition is a stateless command descriptor.
//
// Event marks descriptors eligible to auto-run on debug events;
// AlwaysRunLevel 0 means never auto-run. Unknown marks the reserved fallback
// consulted when no other descriptor matches; at most one should be present
// in a registry.
type Definition struct {
	Name        string
	Description string
	Regexp      *regexp.Regexp

	Event               bool
	AlwaysRunLevel      int
	NeedsLiveContext    bool
	AllowedInPostMortem bool
	AllowedInControl    bool
	Unknown             bool

	Handler Handler
}

// Registry is an ordered set of definitions. Order is dispatch order.
type Registry []Definition

// EventCommands returns the definitions eligible to run on debug events.
func (r Registry) EventCommands() []Definition {
	out := make([]Definition, 0, len(r))
	for _, d := range r {
		if d.Event {
			out = append(out, d)
		}
	}
	return out
}

// ControlCommands returns the definitions usable in a control session.
func (r Registry) ControlCommands() []Definition {
	out := make([]Definition, 0, len(r))
	for _, d := range r {
		if d.AllowedInControl {
			out = append(out, d)
		}
	}
	return out
}

// Bound is a definition bound to a session state: an executable instance.
type Bound struct {
	def     Definition
	state   *State
	matched string
}

// Bind produces an instance of def operating on state.
func Bind(def Definition, state *State) *Bound {
	return &Bound{def: def, state: state}
}

// BindAll binds every definition in order and records the instances on the
// state.
func BindAll(defs []Definition, state *State) []*Bound {
	cmds := make([]*Bound, 0, len(defs))
	for _, def := range defs {
		cmds = append(cmds, Bind(def, state))
	}
	state.Commands = cmds
	return cmds
}

// Matches reports whether the instance accepts text, remembering it for
// Execute.
func (b *Bound) Matches(text string) bool {
	if b.def.Regexp == nil || !b.def.Regexp.MatchString(text) {
		return false
	}
	b.matched = text
	return true
}

// Accept records text without consulting the predicate. Used for the
// reserved unknown fallback, which receives whatever nothing else matched.
func (b *Bound) Accept(text string) {
	b.matched = text
}

// Execute runs the command against the last matched text.
func (b *Bound) Execute() error {
	if b.def.Handler == nil {
		return nil
	}
	return b.def.Handler(b.state, b.matched)
}

func (b *Bound) Def() Definition {
	return b.def
}
