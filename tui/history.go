package tui

// History stores recent input lines with a movable cursor for up/down
// recall.
type History struct {
	lines  []string
	cursor int
	max    int
}

// NewHistory creates a history with the given capacity.
func NewHistory(max int) *History {
	return &History{max: max, cursor: -1}
}

// Add appends a line and resets the cursor. Consecutive duplicates are
// collapsed.
func (h *History) Add(line string) {
	if len(h.lines) > 0 && h.lines[len(h.lines)-1] == line {
		h.cursor = -1
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.max {
		h.lines = h.lines[1:]
	}
	h.cursor = -1
}

// Prev moves the cursor back and returns that line.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.cursor == -1 {
		h.cursor = len(h.lines) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return h.lines[h.cursor], true
}

// Next moves the cursor forward and returns that line. Returns false when
// the cursor runs off the newest entry.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 || h.cursor >= len(h.lines)-1 {
		h.cursor = -1
		return "", false
	}
	h.cursor++
	return h.lines[h.cursor], true
}

// ResetCursor moves the cursor past the newest entry.
func (h *History) ResetCursor() {
	h.cursor = -1
}
