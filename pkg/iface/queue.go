package iface

import "sync"

// CommandQueue is the pending-input queue shared by all Interface
// implementations. Embed it to satisfy PushCommand/PopCommand.
type CommandQueue struct {
	mu      sync.Mutex
	pending []string
}

func (q *CommandQueue) PushCommand(cmd string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, cmd)
}

func (q *CommandQueue) PopCommand() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return "", false
	}
	cmd := q.pending[0]
	q.pending = q.pending[1:]
	return cmd, true
}

func (q *CommandQueue) QueueLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
