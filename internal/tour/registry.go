package tour

import "sync"

// Registry tracks the latest known rectangle for each target name. The host
// UI writes on every layout pass; the placement engine reads. Last writer
// wins; a rect may be stale by at most one render cycle.
type Registry struct {
	mu    sync.Mutex
	rects map[TargetName]Rect
}

func NewRegistry() *Registry {
	return &Registry{rects: make(map[TargetName]Rect)}
}

// Register stores the current rectangle for name, replacing any previous one.
func (r *Registry) Register(name TargetName, rect Rect) {
	r.mu.Lock()
	r.rects[name] = rect
	r.mu.Unlock()
}

// Lookup returns the last registered rectangle for name. Absent entries are
// not an error; the second return is false.
func (r *Registry) Lookup(name TargetName) (Rect, bool) {
	r.mu.Lock()
	rect, ok := r.rects[name]
	r.mu.Unlock()
	return rect, ok
}
