package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/iface"
	"github.com/espinet/byebug/pkg/settings"
)

func marker(label string) string {
	return "\x1a\x1a" + label + "\n"
}

func TestAnnotationsSilentBelowVerbosity3(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 2}, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	assert.NotContains(t, script.Printed(), "\x1a\x1a")
}

func TestPreloopEmitsStopMarkers(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 3}, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))

	out := script.Printed()
	assert.Contains(t, out, marker("stopped"))
	assert.Contains(t, out, marker("stack"))
	assert.Contains(t, out, marker("variables"))
	assert.NotContains(t, out, marker("exited"))
}

func TestBreakpointAnnotationEdgeTriggered(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 3}, script)

	// Two consecutive stops with an empty breakpoint set: the marker may
	// appear only on the first.
	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	require.NoError(t, p.AtLine(liveContext(), "app.go", 11))
	assert.Equal(t, 1, strings.Count(script.Printed(), marker("breakpoints")))

	// A non-empty set re-arms the trigger.
	p.Breakpoints().Add("app.go", 20)
	require.NoError(t, p.AtLine(liveContext(), "app.go", 12))
	assert.Equal(t, 2, strings.Count(script.Printed(), marker("breakpoints")))
}

func TestExitedEmittedOncePerDeadTransition(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 3}, script)

	require.NoError(t, p.AtLine(deadContext(), "app.go", 99))
	require.NoError(t, p.AtLine(deadContext(), "app.go", 99))

	out := script.Printed()
	assert.Equal(t, 1, strings.Count(out, marker("exited")))
	assert.Equal(t, 1, strings.Count(out, "The program finished.\n"))
}

func TestRunCommandEmitsStartingMarker(t *testing.T) {
	script := iface.NewScriptInterface("continue")
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 3}, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	assert.Contains(t, script.Printed(), marker("starting"))
}

func TestBreakpointMutatorRefreshesAnnotation(t *testing.T) {
	script := iface.NewScriptInterface("break app.go:20")
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 3}, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))

	// Once from preloop, once after the break clause.
	assert.Equal(t, 2, strings.Count(script.Printed(), marker("breakpoints")))
	assert.Contains(t, script.Printed(), "at app.go:20")
}

func TestDisplayAnnotationSkippedWhenEmpty(t *testing.T) {
	script := iface.NewScriptInterface()
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 3}, script)

	require.NoError(t, p.AtLine(liveContext(), "app.go", 10))
	assert.NotContains(t, script.Printed(), marker("display"))

	p.Display().Add("x + y")
	require.NoError(t, p.AtLine(liveContext(), "app.go", 11))
	assert.Contains(t, script.Printed(), marker("display"))
	assert.Contains(t, script.Printed(), "1: x + y\n")
}

func TestPromptWrappedWithAnnotationMarkers(t *testing.T) {
	p := newTestProcessor(command.DefaultRegistry(), &settings.Settings{Annotate: 3}, iface.NewScriptInterface())
	pr := p.prompt(liveContext())
	assert.True(t, strings.HasPrefix(pr, marker("pre-prompt")))
	assert.Contains(t, pr, "(debugger) ")
	assert.True(t, strings.HasSuffix(pr, marker("prompt")))
}
