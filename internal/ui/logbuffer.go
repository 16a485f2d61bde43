package ui

// LogBuffer is a bounded FIFO of log lines. Appending past the cap evicts
// the oldest lines.
type LogBuffer struct {
	lines []string
	cap   int
}

func NewLogBuffer(capacity int) *LogBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &LogBuffer{cap: capacity}
}

func (b *LogBuffer) Append(line string) {
	b.lines = append(b.lines, line)
	if len(b.lines) > b.cap {
		// Copy down instead of reslicing so the evicted backing memory is
		// reclaimable.
		overflow := len(b.lines) - b.cap
		n := copy(b.lines, b.lines[overflow:])
		b.lines = b.lines[:n]
	}
}

func (b *LogBuffer) Len() int {
	return len(b.lines)
}

// Lines returns the retained lines, oldest first. The slice is shared;
// callers must not mutate it.
func (b *LogBuffer) Lines() []string {
	return b.lines
}

func (b *LogBuffer) Clear() {
	b.lines = b.lines[:0]
}
