// Package processor turns raw debug events into interactive command
// sessions: it selects and binds commands for each stop, runs the prompt
// loop, dispatches clauses, and emits the annotation protocol for editor
// frontends.
package processor

import (
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/espinet/byebug/pkg/breakpoint"
	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/iface"
	"github.com/espinet/byebug/pkg/logger"
	"github.com/espinet/byebug/pkg/settings"
)

// CommandProcessor drives the interactive session for debug events. All
// event entry points run under one exclusive transport lock, so at most one
// dispatch is ever in flight per processor.
type CommandProcessor struct {
	mu   sync.Mutex
	intf iface.Interface

	registry    command.Registry
	settings    *settings.Settings
	breakpoints *breakpoint.Set
	display     *command.DisplayList
	annot       annotator

	// SourceLine retrieves one source line for location printing and trace
	// output. Defaults to an on-demand file read.
	SourceLine func(file string, line int) (string, bool)

	lastCmd       string
	lastState     *command.State
	lastTraceFile string
	lastTraceLine int
}

func NewCommandProcessor(registry command.Registry, opts *settings.Settings, bps *breakpoint.Set, in iface.Interface) *CommandProcessor {
	if opts == nil {
		opts = settings.New()
	}
	if bps == nil {
		bps = breakpoint.NewSet()
	}
	return &CommandProcessor{
		intf:        in,
		registry:    registry,
		settings:    opts,
		breakpoints: bps,
		display:     command.NewDisplayList(),
		SourceLine:  fileSourceLine,
	}
}

// Attach replaces the transport. The old handle is always closed before the
// swap, and annotation edge state is reset for the new frontend.
func (p *CommandProcessor) Attach(in iface.Interface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.intf != nil {
		p.intf.Close()
	}
	p.intf = in
	p.annot.reset()
}

// Interface returns the currently attached transport, nil when detached.
func (p *CommandProcessor) Interface() iface.Interface {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.intf
}

// Breakpoints returns the breakpoint set this processor consults.
func (p *CommandProcessor) Breakpoints() *breakpoint.Set {
	return p.breakpoints
}

// Display returns the display list shared across stops.
func (p *CommandProcessor) Display() *command.DisplayList {
	return p.display
}

// LastState exposes the most recently built session state. Populated only
// when the testing option is set.
func (p *CommandProcessor) LastState() *command.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastState
}

// protect runs fn under the transport lock with the containment contract:
// a detached processor no-ops, a transport failure detaches so future events
// go silent, a termination request propagates, and anything else (including
// a panicking command) is reported and contained.
func (p *CommandProcessor) protect(fn func(out iface.Interface) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.intf == nil {
		return nil
	}
	out := p.intf
	err := runContained(fn, out)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, command.ErrTerminate):
		return err
	case isTransportErr(err):
		out.Close()
		if p.intf == out {
			p.intf = nil
		}
		logger.WarnC("processor", "transport failed, interface detached")
		return nil
	default:
		reportInternal(out, err)
		return nil
	}
}

// runContained converts a panic in fn into an error carrying the rendered
// stack.
func runContained(fn func(iface.Interface) error, out iface.Interface) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &internalError{cause: fmt.Sprintf("%v", r), stack: debug.Stack()}
		}
	}()
	return fn(out)
}

type internalError struct {
	cause string
	stack []byte
}

func (e *internalError) Error() string {
	return e.cause
}

func isTransportErr(err error) bool {
	return errors.Is(err, iface.ErrClosed) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, syscall.EPIPE)
}

// reportInternal writes the diagnostic and stack to the best-effort sink.
// Failures during reporting are swallowed; reporting must never take the
// session down.
func reportInternal(out iface.Interface, err error) {
	defer func() { recover() }()
	cause := err.Error()
	stack := debug.Stack()
	var ie *internalError
	if errors.As(err, &ie) {
		cause = ie.cause
		stack = ie.stack
	}
	logger.ErrorCF("processor", "internal error", map[string]any{"error": cause})
	out.ErrMsg("INTERNAL ERROR!!! %s\n", cause)
	out.ErrMsg("%s\n", stack)
}
