package reporter

import (
	"strings"
	"sync"
)

// Memory records messages in order for assertions in tests.
type Memory struct {
	mu    sync.Mutex
	lines []Line
}

// Line is a single recorded message with its severity.
type Line struct {
	Level string // "info", "warn", "error", "blank"
	Text  string
}

func (m *Memory) record(level, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, Line{Level: level, Text: text})
}

func (m *Memory) Info(message string)  { m.record("info", message) }
func (m *Memory) Warn(message string)  { m.record("warn", message) }
func (m *Memory) Error(message string) { m.record("error", message) }
func (m *Memory) Blank()               { m.record("blank", "") }

// Lines returns a copy of everything recorded so far.
func (m *Memory) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Contains reports whether any recorded line contains the substring.
func (m *Memory) Contains(substr string) bool {
	for _, line := range m.Lines() {
		if strings.Contains(line.Text, substr) {
			return true
		}
	}
	return false
}
