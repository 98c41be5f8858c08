package processor

import (
	"github.com/espinet/byebug/pkg/breakpoint"
	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/iface"
)

// AtBreakpoint announces a breakpoint hit. The interactive session itself
// starts with the AtLine event that follows.
func (p *CommandProcessor) AtBreakpoint(ctx command.Context, bp *breakpoint.Breakpoint) error {
	return p.protect(func(out iface.Interface) error {
		p.aprint(out, "stopped")
		file := p.canonicFile(bp.File)
		if p.settings.Annotate > 2 {
			out.Print("\x1a\x1asource %s:%d\n", file, bp.Line)
		}
		out.Print("Stopped by breakpoint %d at %s:%d\n", bp.Number, file, bp.Line)
		return nil
	})
}

// AtCatchpoint announces a caught exception at the newest frame.
func (p *CommandProcessor) AtCatchpoint(ctx command.Context, exception string) error {
	return p.protect(func(out iface.Interface) error {
		p.aprint(out, "stopped")
		file := p.canonicFile(ctx.FrameFile(0))
		line := ctx.FrameLine(0)
		if p.settings.Annotate > 2 {
			out.Print("\x1a\x1a%s:%d\n", file, line)
		}
		out.Print("Catchpoint at %s:%d: `%s'\n", file, line, exception)
		return nil
	})
}

// AtTracing prints the trace line and fires level-2 auto-run commands.
// With tracing_plus set, consecutive events for the same file and line are
// printed once.
func (p *CommandProcessor) AtTracing(ctx command.Context, file string, line int) error {
	return p.protect(func(out iface.Interface) error {
		if !(p.settings.TracingPlus && file == p.lastTraceFile && line == p.lastTraceLine) {
			text, _ := p.sourceLine(file, line)
			out.Print("Tracing: %s:%d %s\n", p.canonicFile(file), line, text)
		}
		p.lastTraceFile, p.lastTraceLine = file, line
		p.alwaysRun(out, ctx, file, line, 2)
		return nil
	})
}

// AtLine starts the interactive session for a line stop.
func (p *CommandProcessor) AtLine(ctx command.Context, file string, line int) error {
	return p.protect(func(out iface.Interface) error {
		return p.processCommands(out, ctx, file, line)
	})
}

// AtReturn starts the interactive session for a return stop.
func (p *CommandProcessor) AtReturn(ctx command.Context, file string, line int) error {
	return p.protect(func(out iface.Interface) error {
		return p.processCommands(out, ctx, file, line)
	})
}

func (p *CommandProcessor) aprint(out iface.Interface, label string) {
	if p.settings.Annotate > 2 {
		out.Print("\x1a\x1a%s\n", label)
	}
}
