package iface

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ScriptInterface feeds a fixed sequence of input lines and records every
// write. It backs automated drivers and the test suite.
type ScriptInterface struct {
	CommandQueue

	mu         sync.Mutex
	input      []string
	output     []string
	errors     []string
	confirm    bool
	readErr    error
	closeCount int
}

func NewScriptInterface(lines ...string) *ScriptInterface {
	return &ScriptInterface{input: lines, confirm: true}
}

// SetConfirm sets the answer Confirm gives.
func (s *ScriptInterface) SetConfirm(answer bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirm = answer
}

// FailReadsWith makes every subsequent ReadCommand fail with err, simulating
// a broken transport.
func (s *ScriptInterface) FailReadsWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

func (s *ScriptInterface) ReadCommand(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return "", s.readErr
	}
	if len(s.input) == 0 {
		return "", io.EOF
	}
	line := s.input[0]
	s.input = s.input[1:]
	return line, nil
}

func (s *ScriptInterface) Print(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = append(s.output, fmt.Sprintf(format, args...))
}

func (s *ScriptInterface) ErrMsg(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, fmt.Sprintf(format, args...))
}

func (s *ScriptInterface) Confirm(prompt string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirm
}

func (s *ScriptInterface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCount++
	return nil
}

// Output returns everything written through Print, in order.
func (s *ScriptInterface) Output() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.output))
	copy(out, s.output)
	return out
}

// Errors returns everything written through ErrMsg, in order.
func (s *ScriptInterface) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.errors))
	copy(out, s.errors)
	return out
}

// Printed returns the concatenated Print output.
func (s *ScriptInterface) Printed() string {
	return strings.Join(s.Output(), "")
}

// CloseCount returns how many times Close has been called.
func (s *ScriptInterface) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCount
}
