// Package console implements an interactive line-editing and command-dispatch
// engine for a character-oriented console. It consumes a raw, non-blocking
// byte stream, maintains a bounded edit line with cursor-at-end semantics,
// recognizes CR/LF, backspace, arrow-key escape sequences and TAB, offers
// command history and prefix completion, and routes submitted lines to
// registered handlers.
//
// The engine is single-threaded by design: one owner drives it by calling
// Pump from its poll loop. Pump must not be called reentrantly or from more
// than one goroutine.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/drake/tinycli/history"
)

// Source is the non-blocking byte supplier driving the engine, typically a
// ring buffer fed by a reader goroutine or an interrupt handler.
type Source interface {
	// PollByte returns the next input byte, or ok=false when no data is
	// currently available. It must never block.
	PollByte() (b byte, ok bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (byte, bool)

// PollByte calls f.
func (f SourceFunc) PollByte() (byte, bool) { return f() }

// Configuration errors returned by New. A console missing its I/O
// capabilities fails closed and never processes a byte.
var (
	ErrNoSource = errors.New("console: no byte source configured")
	ErrNoSink   = errors.New("console: no byte sink configured")
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultLineCapacity = 128 // one slot reserved, 127 usable bytes
	DefaultHistorySize  = 10
	DefaultMaxArgs      = 8
	DefaultMaxMatches   = 10
)

const prompt = "> "

// Config carries the capabilities and limits for one console session.
type Config struct {
	// Source and Sink are required; New fails without them.
	Source Source
	Sink   io.Writer

	// Commands is the ordered command table. It is copied at construction
	// and immutable afterward.
	Commands []Command

	// Banner is written once before the first prompt. Empty suppresses it.
	Banner string

	// LineCapacity, HistorySize, MaxArgs and MaxMatches bound the edit
	// line, the history ring, tokenization and completion. Zero selects
	// the defaults above.
	LineCapacity int
	HistorySize  int
	MaxArgs      int
	MaxMatches   int

	// HistoryStore, when set, seeds the history ring at startup and
	// receives every recorded line.
	HistoryStore history.Store
}

// Stats counts engine activity for diagnostics.
type Stats struct {
	Bytes      uint64 // bytes drained from the source
	Lines      uint64 // submit events processed
	Dispatched uint64 // handlers invoked
	Unknown    uint64 // unknown-command notices emitted
	Dropped    uint64 // bytes discarded by the sequence recognizer
}

// Console is the session controller gluing the decoder, edit line, history
// ring, completion engine and dispatcher into the per-byte processing loop.
// All state is owned by the single goroutine calling Pump; there is no
// locking because there is no concurrent access.
type Console struct {
	src     Source
	sink    io.Writer
	table   *Table
	line    *EditLine
	hist    *history.Ring
	decoder Decoder

	maxArgs    int
	maxMatches int
	stats      Stats
}

// New validates cfg and builds a ready console, writing the banner (if any)
// and the first prompt to the sink. A missing source or sink is the one hard
// failure: the session must not start without its I/O capabilities.
func New(cfg Config) (*Console, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	if cfg.Sink == nil {
		return nil, ErrNoSink
	}

	lineCap := cfg.LineCapacity
	if lineCap == 0 {
		lineCap = DefaultLineCapacity
	}
	histSize := cfg.HistorySize
	if histSize == 0 {
		histSize = DefaultHistorySize
	}
	maxArgs := cfg.MaxArgs
	if maxArgs == 0 {
		maxArgs = DefaultMaxArgs
	}
	maxMatches := cfg.MaxMatches
	if maxMatches == 0 {
		maxMatches = DefaultMaxMatches
	}

	hist := history.NewRing(histSize)
	if cfg.HistoryStore != nil {
		if err := hist.Restore(cfg.HistoryStore); err != nil {
			return nil, fmt.Errorf("console: restore history: %w", err)
		}
	}

	c := &Console{
		src:        cfg.Source,
		sink:       cfg.Sink,
		table:      NewTable(cfg.Commands),
		line:       NewEditLine(lineCap),
		hist:       hist,
		maxArgs:    maxArgs,
		maxMatches: maxMatches,
	}

	if cfg.Banner != "" {
		c.emit(cfg.Banner)
	}
	c.emit(prompt)
	return c, nil
}

// Pump drains all currently available input and returns. It never blocks;
// the host calls it repeatedly from its poll loop.
func (c *Console) Pump() {
	for {
		b, ok := c.src.PollByte()
		if !ok {
			return
		}
		c.stats.Bytes++
		c.process(b)
	}
}

func (c *Console) process(b byte) {
	switch c.decoder.Next(b) {
	case ActionLiteral:
		// A full line stops growing; the dropped byte is not echoed.
		if c.line.Append(b) {
			c.emitByte(b)
		}
	case ActionSubmit:
		c.submit()
	case ActionEraseLast:
		if c.line.EraseLast() {
			c.emit("\b \b")
		}
	case ActionHistoryPrev:
		c.browse(history.Older)
	case ActionHistoryNext:
		c.browse(history.Newer)
	case ActionComplete:
		c.complete()
	case ActionConsumed:
	case ActionDropped:
		c.stats.Dropped++
	}
}

// submit finishes the current line: echo CRLF, record and dispatch, then
// reset per-line state and reprompt. An empty line only reprompts.
func (c *Console) submit() {
	c.emit("\r\n")
	c.stats.Lines++
	if line := c.line.String(); line != "" {
		c.hist.Record(line)
		c.dispatch(line)
	}
	c.line.Clear()
	c.decoder.Reset()
	c.emit(prompt)
}

// browse loads a history entry into the edit line, redrawing the visible
// line, or clears it when browsing moves past the newest entry.
func (c *Console) browse(d history.Direction) {
	entry, res := c.hist.Browse(d)
	if res == history.BrowseNone {
		return
	}
	c.clearVisible()
	if res == history.BrowseClear {
		c.line.Clear()
		return
	}
	c.line.Replace(entry)
	c.emit(c.line.String())
}

// clearVisible wipes the visible line on screen and re-emits the prompt,
// leaving the terminal cursor right after it.
func (c *Console) clearVisible() {
	c.emit("\r" + prompt)
	c.emit(strings.Repeat(" ", c.line.Len()))
	c.emit("\r" + prompt)
}

// Stats returns a snapshot of the activity counters.
func (c *Console) Stats() Stats {
	return c.stats
}

// History returns the recorded history lines, oldest first.
func (c *Console) History() []string {
	return c.hist.Lines()
}

// Writes to the sink are best effort: the sink owns any buffering or
// backpressure concerns, and the engine has no error channel for them.

func (c *Console) emit(s string) {
	_, _ = io.WriteString(c.sink, s)
}

func (c *Console) emitByte(b byte) {
	_, _ = c.sink.Write([]byte{b})
}
