package console

import "strings"

// complete handles TAB: prefix completion of the command word against the
// table. Only the first token is completable, so a line already containing a
// space is left alone, as is an empty line.
func (c *Console) complete() {
	word := c.line.String()
	if word == "" || strings.IndexByte(word, ' ') >= 0 {
		return
	}

	matches := c.table.Matches(word, c.maxMatches)
	switch len(matches) {
	case 0:
	case 1:
		c.completeSingle(word, matches[0])
	default:
		c.completeMany(word, matches)
	}
}

// completeSingle extends the typed word to the full match, echoing only the
// missing suffix, and appends a trailing space when the match fits the line
// so the next token can begin immediately.
func (c *Console) completeSingle(word, match string) {
	if word == match {
		return
	}
	c.line.Replace(match)
	cur := c.line.String()
	c.emit(cur[len(word):])
	if cur == match && c.line.Append(' ') {
		c.emitByte(' ')
	}
}

// completeMany lists the candidates, extends the line to their common prefix
// when that gains anything, and redraws the prompt with the current line.
func (c *Console) completeMany(word string, matches []string) {
	c.emit("\r\n")
	c.emit(strings.Join(matches, "  "))
	c.emit("\r\n")
	if p := commonPrefix(matches); len(p) > len(word) {
		c.line.Replace(p)
	}
	c.emit(prompt)
	c.emit(c.line.String())
}

// commonPrefix returns the longest byte prefix shared by all names.
func commonPrefix(names []string) string {
	p := names[0]
	for _, n := range names[1:] {
		for len(p) > 0 && (len(n) < len(p) || n[:len(p)] != p) {
			p = p[:len(p)-1]
		}
	}
	return p
}
