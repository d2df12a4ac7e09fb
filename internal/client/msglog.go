package client

import "sync"

const DefaultLogLines = 50

// Log keeps the newest messages first.
type Log struct {
	mu    sync.RWMutex
	lines []string
	max   int
}

func NewLog(max int) *Log {
	if max <= 0 {
		max = DefaultLogLines
	}
	return &Log{max: max}
}

func (l *Log) Add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append([]string{msg}, l.lines...)
	if len(l.lines) > l.max {
		l.lines = l.lines[:l.max]
	}
}

// Lines returns a copy, newest first.
func (l *Log) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
