package history

import (
	"bufio"
	"context"
	"os"
	"strings"

	ioutils "github.com/handiism/layer-renamer/internal/io"
)

// DefaultLimit is the number of templates kept when no limit is configured.
const DefaultLimit = 5

// History is a bounded list of recently used templates.
//
// Entries are distinct and ordered oldest first. Adding a template that is
// already present moves it to the most recent position; adding beyond the
// limit drops the oldest entry.
//
// Example:
//
//	h := history.New(5)
//	h.Add("{layer:name}")
//	h.Add("{layer:name}_{nn:1}")
//	h.Add("{layer:name}")
//	h.Entries() // ["{layer:name}_{nn:1}", "{layer:name}"]
type History struct {
	entries []string
	limit   int
}

// New creates an empty History holding at most limit templates.
// A limit below 1 means DefaultLimit.
func New(limit int) *History {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Add records tmpl as the most recently used template.
//
// Blank templates are ignored.
func (h *History) Add(tmpl string) {
	if strings.TrimSpace(tmpl) == "" {
		return
	}

	kept := h.entries[:0]
	for _, e := range h.entries {
		if e != tmpl {
			kept = append(kept, e)
		}
	}
	h.entries = append(kept, tmpl)

	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
}

// Entries returns the templates oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Recent returns the templates most recent first, the order they are shown in.
func (h *History) Recent() []string {
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[len(h.entries)-1-i] = e
	}
	return out
}

// Len returns the number of stored templates.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the maximum number of stored templates.
func (h *History) Limit() int {
	return h.limit
}

// Load reads a history file.
//
// The file holds a single line of comma-separated templates, most recent
// last. A missing or unreadable file yields an empty history and no error.
// Templates are not escaped, so a template containing a comma comes back
// as two entries.
func Load(path string, limit int) *History {
	h := New(limit)

	f, err := os.Open(path)
	if err != nil {
		return h
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		return h
	}

	for _, tmpl := range strings.Split(sc.Text(), ",") {
		h.Add(tmpl)
	}
	return h
}

// Save overwrites path with the history as one comma-joined line.
func (h *History) Save(ctx context.Context, path string) error {
	line := strings.Join(h.entries, ",") + "\n"
	return ioutils.WriteFileAtomic(ctx, path, []byte(line))
}
