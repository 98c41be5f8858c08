package command

// Context is the handle to the stopped debuggee consumed by commands and the
// processors. Stack and frame introspection live in the execution engine;
// this is only the contract the command layer needs.
type Context interface {
	IsTerminated() bool
	FrameFile(index int) string
	FrameLine(index int) int
	StackDepth() int
}

// VariableLister is implemented by contexts that can enumerate the variables
// visible in a frame. "info variables" prints nothing for contexts that
// cannot.
type VariableLister interface {
	Variables(frame int) []string
}
