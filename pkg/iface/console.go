package iface

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// ConsoleInterface reads commands from the local terminal with line editing
// and history.
type ConsoleInterface struct {
	CommandQueue

	rl        *readline.Instance
	closeOnce sync.Once
	closeErr  error
}

func NewConsoleInterface() (*ConsoleInterface, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "",
		HistoryFile:     filepath.Join(os.TempDir(), ".byebug_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("initialize readline: %w", err)
	}
	return &ConsoleInterface{rl: rl}, nil
}

func (c *ConsoleInterface) ReadCommand(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if err != nil {
		// ^C ends the session the same way an exhausted stream does.
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", io.EOF
		}
		return "", fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *ConsoleInterface) Print(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}

func (c *ConsoleInterface) ErrMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "*** "+format, args...)
}

func (c *ConsoleInterface) Confirm(prompt string) bool {
	answer, err := c.ReadCommand(prompt)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (c *ConsoleInterface) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.rl.Close()
	})
	return c.closeErr
}
