package processor

import (
	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/logger"
)

// Annotation markers multiplex a machine-readable side channel onto normal
// output for editor frontends: two SUB bytes, a label, a newline, then the
// payload produced by running the corresponding internal command.

// Which commands re-trigger which annotations after a clause runs. The
// tables are fixed; the mutable edge state lives on the annotator so
// independent processors never share it.
var (
	breakpointTriggers = []string{"break", "b", "condition", "delete", "disable", "enable"}
	runTriggers        = []string{"continue", "cont", "c", "finish", "fin", "next", "n", "step", "s"}
)

// annotator owns the per-processor annotation policy and its edge-trigger
// state. Everything is a no-op below verbosity 3.
type annotator struct {
	bpWasEmpty bool
	wasDead    bool
}

func (a *annotator) reset() {
	a.bpWasEmpty = false
	a.wasDead = false
}

// preloop emits the stop-entry annotations before the first prompt.
func (a *annotator) preloop(p *CommandProcessor, state *command.State) {
	if p.settings.Annotate <= 2 {
		return
	}
	state.Print("\x1a\x1astopped\n")

	dead := state.Context != nil && state.Context.IsTerminated()
	if dead && !a.wasDead {
		// First observation of a terminated context since reattachment.
		a.wasDead = true
		state.Print("\x1a\x1aexited\n")
		state.Print("The program finished.\n")
	}

	a.breakpointAnnotation(p, state)
	a.displayAnnotation(p, state)
	a.annotation(p, state, "stack", "where")
	if !dead {
		a.annotation(p, state, "variables", "info variables")
	}
}

// postcmd re-emits whatever annotations the clause that just ran may have
// invalidated.
func (a *annotator) postcmd(p *CommandProcessor, state *command.State, clause string) {
	if p.settings.Annotate <= 2 {
		return
	}
	token := firstToken(clause)

	if contains(breakpointTriggers, token) {
		a.breakpointAnnotation(p, state)
	}
	a.displayAnnotation(p, state)

	if contains(runTriggers, token) {
		if state.Context != nil && state.Context.StackDepth() > 0 {
			a.annotation(p, state, "stack", "where")
		}
		dead := state.Context != nil && state.Context.IsTerminated()
		if !dead {
			a.annotation(p, state, "variables", "info variables")
			state.Print("\x1a\x1astarting\n")
			a.wasDead = false
		}
	}
}

func (a *annotator) postloop(p *CommandProcessor, state *command.State) {
	logger.DebugCF("processor", "stop loop finished", map[string]any{"state": state.ID})
}

// annotation prints the marker, then produces the payload by dispatching cmd
// through the bound commands. Payload failures are best-effort.
func (a *annotator) annotation(p *CommandProcessor, state *command.State, label, cmd string) {
	state.Print("\x1a\x1a%s\n", label)
	if err := p.oneCmd(state, state.Commands, cmd); err != nil {
		logger.DebugCF("processor", "annotation payload failed",
			map[string]any{"label": label, "error": err.Error()})
	}
}

// breakpointAnnotation is edge-triggered: suppressed only when the set was
// empty on this and the previous observation.
func (a *annotator) breakpointAnnotation(p *CommandProcessor, state *command.State) {
	empty := p.breakpoints.IsEmpty()
	if !empty || !a.bpWasEmpty {
		a.annotation(p, state, "breakpoints", "info breakpoints")
	}
	a.bpWasEmpty = empty
}

func (a *annotator) displayAnnotation(p *CommandProcessor, state *command.State) {
	if state.Display.IsEmpty() {
		return
	}
	a.annotation(p, state, "display", "display")
}
