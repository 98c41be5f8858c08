package command

import (
	"errors"
	"fmt"
)

// ErrCmd aborts the remaining clauses of the current input line. The
// processor catches it at the line loop and moves on to the next prompt.
var ErrCmd = errors.New("command aborted")

// ErrTerminate ends the whole session. The isolation wrapper never swallows
// it; it always propagates to the caller.
var ErrTerminate = errors.New("terminate requested")

// ErrNoFileContext is returned when a command asks for the current file
// outside a live stop (control sessions have no file). It aborts the clause.
var ErrNoFileContext = fmt.Errorf("%w: no file context", ErrCmd)
