package action

import "strings"

// Log is the in-memory trail of executed actions, in execution order. It
// survives restores.
type Log struct {
	entries []Action
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append records an executed action.
func (l *Log) Append(a Action) {
	l.entries = append(l.entries, a)
}

// Len returns the number of logged actions.
func (l *Log) Len() int { return len(l.entries) }

// String renders one action per line.
func (l *Log) String() string {
	var b strings.Builder
	for _, a := range l.entries {
		b.WriteString(a.String())
		b.WriteByte('\n')
	}
	return b.String()
}
