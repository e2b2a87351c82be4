package purfectconsole

// History is the recall ring of submitted lines. Entries are kept verbatim,
// never deduplicated and never trimmed; only the recall cursor moves.
//
// History is not safe for concurrent use; the Console serializes access.
type History struct {
	entries []string
	cursor  int // len(entries) means no recall in progress
}

// NewHistory creates a ring holding a copy of entries
func NewHistory(entries []string) *History {
	h := &History{}
	h.SetEntries(entries)
	return h
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the recall position
func (h *History) Cursor() int {
	return h.cursor
}

// Record appends a submitted line and moves the cursor past the end
func (h *History) Record(line string) {
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
}

// Previous steps the cursor back, wrapping from the oldest entry to the
// newest, and returns the entry under it
func (h *History) Previous() string {
	h.cursor--
	if h.cursor < 0 {
		h.cursor = len(h.entries) - 1
	}
	return h.at(h.cursor)
}

// Next steps the cursor forward, wrapping from the newest entry to the
// oldest, and returns the entry under it
func (h *History) Next() string {
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = 0
	}
	return h.at(h.cursor)
}

// First jumps to the oldest entry
func (h *History) First() string {
	h.cursor = 0
	return h.at(0)
}

// Last jumps to the newest entry
func (h *History) Last() string {
	h.cursor = len(h.entries) - 1
	return h.at(h.cursor)
}

func (h *History) at(i int) string {
	if i < 0 || i >= len(h.entries) {
		return ""
	}
	return h.entries[i]
}

// Entries returns a copy of the entries, oldest first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// SetEntries replaces the ring contents and resets the cursor
func (h *History) SetEntries(entries []string) {
	h.entries = append([]string(nil), entries...)
	h.cursor = len(h.entries)
}
