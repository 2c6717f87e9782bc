package console

// EditLine is the bounded line currently being typed. The cursor is always at
// the end; the engine supports no interior editing. One slot of the capacity
// is reserved, so a line holds at most capacity-1 bytes.
type EditLine struct {
	buf []byte
	cap int
}

// NewEditLine creates an empty line with the given total capacity.
func NewEditLine(capacity int) *EditLine {
	if capacity < 2 {
		capacity = 2
	}
	return &EditLine{buf: make([]byte, 0, capacity-1), cap: capacity}
}

// Append adds one byte at the cursor. It reports false, leaving the line
// untouched, once the usable capacity is reached.
func (l *EditLine) Append(b byte) bool {
	if len(l.buf) >= l.cap-1 {
		return false
	}
	l.buf = append(l.buf, b)
	return true
}

// EraseLast removes the byte before the cursor, reporting false on an empty
// line.
func (l *EditLine) EraseLast() bool {
	if len(l.buf) == 0 {
		return false
	}
	l.buf = l.buf[:len(l.buf)-1]
	return true
}

// Replace overwrites the line with text, truncating to the usable capacity.
func (l *EditLine) Replace(text string) {
	if len(text) > l.cap-1 {
		text = text[:l.cap-1]
	}
	l.buf = append(l.buf[:0], text...)
}

// Clear empties the line.
func (l *EditLine) Clear() {
	l.buf = l.buf[:0]
}

// Len returns the number of bytes in the line.
func (l *EditLine) Len() int {
	return len(l.buf)
}

// String returns a snapshot of the current contents.
func (l *EditLine) String() string {
	return string(l.buf)
}
