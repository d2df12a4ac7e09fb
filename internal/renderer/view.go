package renderer

import (
	"sync"

	"djirgha/internal/board"
)

// ViewState holds what was last painted for each point, kept apart from the
// immutable layout.
type ViewState struct {
	mu    sync.RWMutex
	fills map[string]string
}

func NewViewState(p board.Params) *ViewState {
	v := &ViewState{fills: make(map[string]string, len(p.Points))}
	for _, pt := range p.Points {
		v.fills[pt.Name] = pt.Color
	}
	return v
}

// Fill returns the last fill color drawn for name.
func (v *ViewState) Fill(name string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.fills[name]
}

func (v *ViewState) set(name, fill string) {
	v.mu.Lock()
	v.fills[name] = fill
	v.mu.Unlock()
}
