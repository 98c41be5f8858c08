package processor

import (
	"errors"
	"io"
	"sync"

	"github.com/espinet/byebug/pkg/breakpoint"
	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/iface"
	"github.com/espinet/byebug/pkg/logger"
	"github.com/espinet/byebug/pkg/settings"
)

// ControlCommandProcessor runs a secondary command loop that is independent
// of debuggee liveness: only control-eligible commands are bound, whole
// lines are matched without clause splitting, and the loop ends only when
// the input stream does.
type ControlCommandProcessor struct {
	mu   sync.Mutex
	intf iface.Interface

	registry    command.Registry
	settings    *settings.Settings
	breakpoints *breakpoint.Set
	display     *command.DisplayList

	lastState *command.State
}

func NewControlCommandProcessor(registry command.Registry, opts *settings.Settings, bps *breakpoint.Set, in iface.Interface) *ControlCommandProcessor {
	if opts == nil {
		opts = settings.New()
	}
	if bps == nil {
		bps = breakpoint.NewSet()
	}
	return &ControlCommandProcessor{
		intf:        in,
		registry:    registry,
		settings:    opts,
		breakpoints: bps,
		display:     command.NewDisplayList(),
	}
}

// LastState exposes the control session state. Populated only when the
// testing option is set.
func (p *ControlCommandProcessor) LastState() *command.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastState
}

// ProcessCommands runs the control loop until end-of-input under the same
// containment contract as event dispatch. The interface is closed on every
// exit path, including early termination.
func (p *ControlCommandProcessor) ProcessCommands() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.intf == nil {
		return nil
	}
	out := p.intf
	defer func() {
		out.Close()
		p.intf = nil
	}()

	err := runContained(p.loop, out)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, command.ErrTerminate):
		return err
	case isTransportErr(err):
		logger.WarnC("control", "transport failed, control session ended")
		return nil
	default:
		reportInternal(out, err)
		return nil
	}
}

func (p *ControlCommandProcessor) loop(out iface.Interface) error {
	state := command.NewControlState(out, p.display, p.breakpoints)
	cmds := command.BindAll(p.registry.ControlCommands(), state)
	if p.settings.Testing {
		p.lastState = state
	}

	for {
		input, ok := out.PopCommand()
		if !ok {
			var err error
			input, err = out.ReadCommand(p.prompt())
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}

		if err := p.oneCmd(state, cmds, input); err != nil {
			if errors.Is(err, command.ErrCmd) {
				// Clause aborted; the next prompt is the recovery path.
				continue
			}
			return err
		}
	}
}

// oneCmd matches the whole line against the bound commands; there is no
// clause splitting in control mode.
func (p *ControlCommandProcessor) oneCmd(state *command.State, cmds []*command.Bound, input string) error {
	for _, c := range cmds {
		if c.Matches(input) {
			return c.Execute()
		}
	}
	state.ErrMsg("Unknown command\n")
	return nil
}

func (p *ControlCommandProcessor) prompt() string {
	pr := "(debugger:ctrl) "
	if p.settings.Annotate > 2 {
		pr = "\x1a\x1apre-prompt\n" + pr + "\n\x1a\x1aprompt\n"
	}
	return pr
}
