package tui

// History is a fixed-size ring of submitted commands with a recall cursor.
type History struct {
	ring   []string
	start  int // index of the oldest entry
	size   int
	cursor int // -1 when not recalling, else offset from the oldest entry
}

// NewHistory creates a history that keeps the last max commands.
func NewHistory(max int) *History {
	return &History{ring: make([]string, max), cursor: -1}
}

// Len reports how many commands are stored.
func (h *History) Len() int { return h.size }

func (h *History) at(offset int) string {
	return h.ring[(h.start+offset)%len(h.ring)]
}

// Push records a command. Repeating the newest command is a no-op; once
// full, the oldest command is overwritten.
func (h *History) Push(cmd string) {
	if len(h.ring) == 0 {
		return
	}
	if h.size > 0 && h.at(h.size-1) == cmd {
		return
	}
	if h.size < len(h.ring) {
		h.ring[(h.start+h.size)%len(h.ring)] = cmd
		h.size++
		return
	}
	h.ring[h.start] = cmd
	h.start = (h.start + 1) % len(h.ring)
}

// Prev steps toward older commands, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = h.size - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.at(h.cursor), true
}

// Next steps toward newer commands. Stepping past the newest ends the
// recall and reports false.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= h.size {
		h.cursor = -1
		return "", false
	}
	return h.at(h.cursor), true
}

// ResetCursor ends any recall in progress.
func (h *History) ResetCursor() {
	h.cursor = -1
}
