// Package history implements the fixed-capacity ring of previously submitted
// command lines, with a browse cursor for up/down recall and an optional
// persistent backing store.
package history

// notBrowsing is the browse cursor sentinel.
const notBrowsing = -1

// Direction selects which way Browse moves through the ring.
type Direction int

const (
	Older Direction = iota
	Newer
)

// BrowseResult tells the caller how to update its edit line after a browse
// step.
type BrowseResult int

const (
	BrowseNone  BrowseResult = iota // nothing to load, leave the line alone
	BrowseLoad                      // overwrite the line with the returned entry
	BrowseClear                     // stepped past the newest entry, clear the line
)

// Store persists history lines across sessions.
type Store interface {
	Append(line string) error
	// Tail returns up to n most recent lines, oldest first.
	Tail(n int) ([]string, error)
	Close() error
}

// Ring holds the most recent submitted lines, oldest first. It is a
// single-owner structure, mutated only by the console processing loop.
type Ring struct {
	lines []string
	limit int
	pos   int // browse cursor, notBrowsing when inactive
	store Store
}

// NewRing creates an empty ring keeping at most limit lines.
func NewRing(limit int) *Ring {
	if limit < 1 {
		limit = 1
	}
	return &Ring{lines: make([]string, 0, limit), limit: limit, pos: notBrowsing}
}

// Restore seeds the ring from store and keeps appending newly recorded lines
// to it.
func (r *Ring) Restore(store Store) error {
	lines, err := store.Tail(r.limit)
	if err != nil {
		return err
	}
	for _, line := range lines {
		r.record(line)
	}
	r.store = store
	return nil
}

// Record adds a submitted line. Empty lines and repeats of the newest entry
// are discarded without touching the browse cursor; an actual append evicts
// the oldest entry when full and leaves the cursor inactive.
func (r *Ring) Record(line string) {
	if !r.record(line) {
		return
	}
	if r.store != nil {
		// Persistence is best effort: the console has no error channel
		// beyond its own sink, and a failed write must not end the session.
		_ = r.store.Append(line)
	}
}

func (r *Ring) record(line string) bool {
	if line == "" {
		return false
	}
	if n := len(r.lines); n > 0 && r.lines[n-1] == line {
		return false
	}
	r.lines = append(r.lines, line)
	if len(r.lines) > r.limit {
		r.lines = r.lines[len(r.lines)-r.limit:]
	}
	r.pos = notBrowsing
	return true
}

// Browse moves the cursor one step and reports what to load.
//
// Older starts browsing at the newest entry, then walks toward the oldest and
// stays there. Newer walks back toward the newest; moving past it deactivates
// browsing and asks the caller to clear its line instead.
func (r *Ring) Browse(d Direction) (string, BrowseResult) {
	if d == Older {
		if len(r.lines) == 0 {
			return "", BrowseNone
		}
		switch {
		case r.pos == notBrowsing:
			r.pos = len(r.lines) - 1
		case r.pos > 0:
			r.pos--
		}
		return r.lines[r.pos], BrowseLoad
	}

	if r.pos == notBrowsing {
		return "", BrowseNone
	}
	r.pos++
	if r.pos >= len(r.lines) {
		r.pos = notBrowsing
		return "", BrowseClear
	}
	return r.lines[r.pos], BrowseLoad
}

// Lines returns a copy of the stored lines, oldest first.
func (r *Ring) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of stored lines.
func (r *Ring) Len() int {
	return len(r.lines)
}

// Browsing reports whether the browse cursor is active.
func (r *Ring) Browsing() bool {
	return r.pos != notBrowsing
}
