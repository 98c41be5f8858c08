package processor

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espinet/byebug/pkg/breakpoint"
	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/iface"
	"github.com/espinet/byebug/pkg/settings"
)

type frame struct {
	file string
	line int
}

type fakeContext struct {
	terminated bool
	frames     []frame
	vars       []string
}

func (c *fakeContext) IsTerminated() bool { return c.terminated }

func (c *fakeContext) FrameFile(i int) string { return c.frames[i].file }

func (c *fakeContext) FrameLine(i int) int { return c.frames[i].line }

func (c *fakeContext) StackDepth() int { return len(c.frames) }

func (c *fakeContext) Variables(frame int) []string { return c.vars }

func liveContext() *fakeContext {
	return &fakeContext{frames: []frame{{"app.go", 10}, {"main.go", 3}}}
}

func deadContext() *fakeContext {
	return &fakeContext{terminated: true, frames: []frame{{"app.go", 99}}}
}

func eventDef(name, pattern string, h command.Handler) command.Definition {
	return command.Definition{
		Name:                name,
		Regexp:              regexp.MustCompile(pattern),
		Event:               true,
		AllowedInPostMortem: true,
		Handler:             h,
	}
}

// noSource keeps tests independent of files on disk.
func noSource(string, int) (string, bool) { return "", false }

func mustRe(pattern string) *regexp.Regexp { return regexp.MustCompile(pattern) }

func joined(parts []string) string { return strings.Join(parts, "") }

func newTestProcessor(reg command.Registry, opts *settings.Settings, in iface.Interface) *CommandProcessor {
	p := NewCommandProcessor(reg, opts, breakpoint.NewSet(), in)
	p.SourceLine = noSource
	return p
}

func TestProceedLatchMonotonic(t *testing.T) {
	script := iface.NewScriptInterface()
	script.PushCommand("continue")
	script.PushCommand("where")
	p := newTestProcessor(command.DefaultRegistry(), nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))

	// The latch ended the loop before the second queued entry was consumed.
	assert.Equal(t, 1, script.QueueLen())
}

func TestQueueDrainedBeforeBlockingRead(t *testing.T) {
	// The scripted line is only reachable through a blocking read; the
	// queued continue must win.
	script := iface.NewScriptInterface("where")
	script.PushCommand("continue")
	p := newTestProcessor(command.DefaultRegistry(), nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	assert.NotContains(t, script.Printed(), "-->")
}

func TestDetachOnTransportFailure(t *testing.T) {
	script := iface.NewScriptInterface()
	script.FailReadsWith(iface.ErrClosed)
	p := newTestProcessor(command.DefaultRegistry(), nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	assert.Nil(t, p.Interface())
	assert.GreaterOrEqual(t, script.CloseCount(), 1)

	seen := len(script.Output())
	require.NoError(t, p.AtLine(liveContext(), "app.go", 11))
	assert.Len(t, script.Output(), seen, "detached processor must stay silent")
}

func TestUnknownCommandDiagnostic(t *testing.T) {
	script := iface.NewScriptInterface("wibble")
	p := newTestProcessor(command.Registry{}, nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))

	errs := script.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `"wibble"`)
	assert.Contains(t, errs[0], "Unknown command")
}

func TestUnknownFallbackHandler(t *testing.T) {
	var got string
	reg := command.Registry{
		eventDef("echo", `^echo$`, func(s *command.State, _ string) error { return nil }),
		{
			Name:                "unknown",
			Event:               true,
			AllowedInPostMortem: true,
			Unknown:             true,
			Handler: func(s *command.State, input string) error {
				got = input
				return nil
			},
		},
	}
	script := iface.NewScriptInterface("frobnicate 1 2")
	p := newTestProcessor(reg, nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	assert.Equal(t, "frobnicate 1 2", got)
	assert.Empty(t, script.Errors())
}

func TestPostMortemFiltering(t *testing.T) {
	reg := command.Registry{
		{
			Name:   "liveonly",
			Regexp: regexp.MustCompile(`^liveonly$`),
			Event:  true,
			Handler: func(*command.State, string) error {
				return nil
			},
		},
		eventDef("anytime", `^anytime$`, func(*command.State, string) error { return nil }),
	}
	script := iface.NewScriptInterface()
	p := newTestProcessor(reg, &settings.Settings{Testing: true}, script)

	require.NoError(t, p.AtLine(deadContext(), "app.go", 99))

	state := p.LastState()
	require.NotNil(t, state)
	require.Len(t, state.Commands, 1)
	assert.Equal(t, "anytime", state.Commands[0].Def().Name)
}

func TestLiveOnlyCommandUnavailablePostMortem(t *testing.T) {
	reg := command.Registry{
		{
			Name:                "run",
			Regexp:              regexp.MustCompile(`^run$`),
			Event:               true,
			NeedsLiveContext:    true,
			AllowedInPostMortem: true,
			Handler: func(s *command.State, _ string) error {
				t.Fatal("live-only command must not execute post-mortem")
				return nil
			},
		},
	}
	script := iface.NewScriptInterface("run")
	p := newTestProcessor(reg, nil, script)

	require.NoError(t, p.AtLine(deadContext(), "app.go", 99))
	assert.Contains(t, script.Printed(), "unavailable")
}

func TestEmptyInputRepeatsLastCommand(t *testing.T) {
	count := 0
	reg := command.Registry{
		eventDef("say", `^say$`, func(*command.State, string) error {
			count++
			return nil
		}),
	}
	script := iface.NewScriptInterface("", "say", "", "")
	p := newTestProcessor(reg, nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))

	// Leading blank line does nothing; the two trailing blanks repeat.
	assert.Equal(t, 3, count)
	assert.Empty(t, script.Errors())
}

func TestClauseDispatchInOrder(t *testing.T) {
	var order []string
	handler := func(name string) command.Handler {
		return func(*command.State, string) error {
			order = append(order, name)
			return nil
		}
	}
	reg := command.Registry{
		eventDef("one", `^\s*one\s*$`, handler("one")),
		eventDef("two", `^\s*two\s*$`, handler("two")),
	}
	script := iface.NewScriptInterface("one; two")
	p := newTestProcessor(reg, nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	assert.Equal(t, []string{"one", "two"}, order)
}

func TestClauseAbortDropsRemainingClauses(t *testing.T) {
	count := 0
	reg := command.Registry{
		eventDef("abort", `^\s*abort\s*$`, func(*command.State, string) error {
			return command.ErrCmd
		}),
		eventDef("say", `^\s*say\s*$`, func(*command.State, string) error {
			count++
			return nil
		}),
	}
	script := iface.NewScriptInterface("abort; say", "say")
	p := newTestProcessor(reg, nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))

	// The clause after the abort was dropped; the next line still ran.
	assert.Equal(t, 1, count)
}

func TestPanickingCommandIsContained(t *testing.T) {
	count := 0
	reg := command.Registry{
		eventDef("boom", `^boom$`, func(*command.State, string) error {
			panic("kaboom")
		}),
		eventDef("say", `^say$`, func(*command.State, string) error {
			count++
			return nil
		}),
	}
	script := iface.NewScriptInterface("boom", "say")
	p := newTestProcessor(reg, nil, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))

	assert.Equal(t, 1, count, "session must survive a faulty command")
	errs := strings.Join(script.Errors(), "")
	assert.Contains(t, errs, "INTERNAL ERROR")
	assert.Contains(t, errs, "kaboom")
}

func TestTerminatePropagates(t *testing.T) {
	script := iface.NewScriptInterface("quit")
	p := newTestProcessor(command.DefaultRegistry(), nil, script)

	err := p.AtLine(liveContext(), "app.go", 10)
	assert.ErrorIs(t, err, command.ErrTerminate)
}

func TestAttachClosesOldInterface(t *testing.T) {
	first := iface.NewScriptInterface()
	second := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), nil, first)

	p.Attach(second)
	assert.Equal(t, 1, first.CloseCount())
	assert.Same(t, iface.Interface(second), p.Interface())
}

func TestPromptReflectsPostMortem(t *testing.T) {
	p := newTestProcessor(command.DefaultRegistry(), nil, iface.NewScriptInterface())
	assert.Equal(t, "(debugger) ", p.prompt(liveContext()))
	assert.Equal(t, "(debugger:post-mortem) ", p.prompt(deadContext()))
}

func TestTracingSuppressesDuplicatesWithTracingPlus(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{TracingPlus: true}, script)

	require.NoError(t, p.AtTracing(liveContext(), "app.go", 10))
	require.NoError(t, p.AtTracing(liveContext(), "app.go", 10))
	require.NoError(t, p.AtTracing(liveContext(), "app.go", 11))

	assert.Equal(t, 2, strings.Count(script.Printed(), "Tracing: "))
}

func TestTracingPrintsDuplicatesByDefault(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), nil, script)

	require.NoError(t, p.AtTracing(liveContext(), "app.go", 10))
	require.NoError(t, p.AtTracing(liveContext(), "app.go", 10))

	assert.Equal(t, 2, strings.Count(script.Printed(), "Tracing: "))
}

func TestAtBreakpointAnnouncesHit(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Basename: true}, script)
	bp := p.Breakpoints().Add("/src/app.go", 42)

	require.NoError(t, p.AtBreakpoint(liveContext(), bp))
	assert.Contains(t, script.Printed(), "Stopped by breakpoint 1 at app.go:42")
}

func TestAtCatchpointAnnouncesException(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Basename: true}, script)

	require.NoError(t, p.AtCatchpoint(liveContext(), "RuntimeError"))
	assert.Contains(t, script.Printed(), "Catchpoint at app.go:10: `RuntimeError'")
}

func TestAtCatchpointMarkersNeedVerbosityAbove2(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Basename: true, Annotate: 2}, script)

	require.NoError(t, p.AtCatchpoint(liveContext(), "RuntimeError"))
	assert.NotContains(t, script.Printed(), "\x1a\x1a")

	loud := iface.NewScriptInterface()
	p.Attach(loud)
	p.settings.Annotate = 3
	require.NoError(t, p.AtCatchpoint(liveContext(), "RuntimeError"))
	assert.Contains(t, loud.Printed(), "\x1a\x1aapp.go:10\n")
}

func TestSyntheticSourceSkipsText(t *testing.T) {
	script := iface.NewScriptInterface()
	p := NewCommandProcessor(command.DefaultRegistry(), nil, breakpoint.NewSet(), script)
	p.SourceLine = func(string, int) (string, bool) {
		t.Fatal("synthetic sources must not be read")
		return "", false
	}

	require.NoError(t, p.AtLine(liveContext(), "(eval)", 1))
	assert.Contains(t, script.Printed(), "(eval):1\n")
}
