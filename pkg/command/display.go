package command

import "sync"

// DisplayList holds the expressions shown at every stop. It is owned by the
// processor and shared across session states, never reset per stop.
type DisplayList struct {
	mu    sync.Mutex
	exprs []string
}

func NewDisplayList() *DisplayList {
	return &DisplayList{}
}

// Add appends an expression and returns its 1-based display number.
func (d *DisplayList) Add(expr string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.exprs = append(d.exprs, expr)
	return len(d.exprs)
}

func (d *DisplayList) IsEmpty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.exprs) == 0
}

// All returns the expressions in display order.
func (d *DisplayList) All() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.exprs))
	copy(out, d.exprs)
	return out
}
