package processor

import (
	"errors"
	"io"
	"strings"

	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/iface"
	"github.com/espinet/byebug/pkg/logger"
)

// alwaysRun builds a fresh session state for a stop and synchronously fires,
// in registry order, every bound command whose own run level is at or above
// level. It returns the state and all bound instances, not just the ones
// that ran. Level 1 is used when entering the interactive loop, level 2 for
// trace events.
func (p *CommandProcessor) alwaysRun(out iface.Interface, ctx command.Context, file string, line, level int) (*command.State, []*command.Bound) {
	defs := p.registry.EventCommands()
	if ctx != nil && ctx.IsTerminated() {
		alive := make([]command.Definition, 0, len(defs))
		for _, d := range defs {
			if d.AllowedInPostMortem {
				alive = append(alive, d)
			}
		}
		defs = alive
	}

	state := command.NewState(out, ctx, p.display, p.breakpoints, file, line)
	cmds := command.BindAll(defs, state)
	for _, c := range cmds {
		if lvl := c.Def().AlwaysRunLevel; lvl > 0 && lvl >= level {
			if err := c.Execute(); err != nil {
				logger.WarnCF("processor", "auto-run command failed",
					map[string]any{"command": c.Def().Name, "error": err.Error()})
			}
		}
	}

	if p.settings.Testing {
		p.lastState = state
	}
	logger.DebugCF("processor", "session state built",
		map[string]any{"state": state.ID, "commands": len(cmds), "level": level})
	return state, cmds
}

// processCommands runs the prompt loop for one debugger stop. It returns
// when the proceed latch is set or the input stream is exhausted.
func (p *CommandProcessor) processCommands(out iface.Interface, ctx command.Context, file string, line int) error {
	state, cmds := p.alwaysRun(out, ctx, file, line, 1)
	p.annot.preloop(p, state)

	if p.settings.AutoList == 0 || syntheticFile(file) {
		p.printLocation(out, file, line)
	}

	for !state.Proceeding() {
		input, ok := out.PopCommand()
		if !ok {
			var err error
			input, err = out.ReadCommand(p.prompt(ctx))
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return err
			}
		}

		if input == "" {
			// A bare return repeats the last command, once there is one.
			if p.lastCmd == "" {
				continue
			}
			input = p.lastCmd
		} else {
			p.lastCmd = input
		}

		for _, clause := range splitCommands(input) {
			err := runContained(func(iface.Interface) error {
				return p.oneCmd(state, cmds, clause)
			}, out)
			if err != nil {
				if errors.Is(err, command.ErrTerminate) || isTransportErr(err) {
					return err
				}
				if errors.Is(err, command.ErrCmd) {
					// Abandon the rest of this line, keep the session.
					break
				}
				reportInternal(out, err)
				break
			}
			p.annot.postcmd(p, state, clause)
		}
	}

	p.annot.postloop(p, state)
	return nil
}

// oneCmd dispatches a single clause against the bound commands: first match
// wins, terminated contexts refuse live-only commands, and unmatched input
// falls through to the reserved unknown handler when one is bound.
func (p *CommandProcessor) oneCmd(state *command.State, cmds []*command.Bound, input string) error {
	for _, c := range cmds {
		if !c.Matches(input) {
			continue
		}
		if state.Context != nil && state.Context.IsTerminated() && c.Def().NeedsLiveContext {
			state.Print("Command is unavailable: the program has finished.\n")
			return nil
		}
		return c.Execute()
	}
	for _, c := range cmds {
		if c.Def().Unknown {
			c.Accept(input)
			return c.Execute()
		}
	}
	state.ErrMsg("Unknown command: %q. Try \"help\".\n", strings.TrimSpace(input))
	return nil
}

func (p *CommandProcessor) prompt(ctx command.Context) string {
	pr := "(debugger) "
	if ctx != nil && ctx.IsTerminated() {
		pr = "(debugger:post-mortem) "
	}
	if p.settings.Annotate > 2 {
		pr = "\x1a\x1apre-prompt\n" + pr + "\n\x1a\x1aprompt\n"
	}
	return pr
}
