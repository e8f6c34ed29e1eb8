package combat

// LogCapacity is the number of lines a combat log keeps.
const LogCapacity = 10

// Log is a bounded, append-only sequence of combat messages.
// When full, the oldest line is evicted.
type Log struct {
	lines []string
}

// NewLog creates an empty combat log.
func NewLog() *Log {
	return &Log{lines: make([]string, 0, LogCapacity)}
}

// Append adds a line, evicting the oldest if the log is full.
func (l *Log) Append(line string) {
	if len(l.lines) == LogCapacity {
		copy(l.lines, l.lines[1:])
		l.lines = l.lines[:LogCapacity-1]
	}
	l.lines = append(l.lines, line)
}

// Reset replaces the whole log with a single line.
func (l *Log) Reset(first string) {
	l.lines = append(l.lines[:0], first)
}

// Clear empties the log.
func (l *Log) Clear() {
	l.lines = l.lines[:0]
}

// Len returns the number of lines held.
func (l *Log) Len() int { return len(l.lines) }

// Lines returns a copy of the log, oldest first.
func (l *Log) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
