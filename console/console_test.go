package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// feedSource is a drainable in-memory Source for tests.
type feedSource struct {
	data []byte
}

func (f *feedSource) PollByte() (byte, bool) {
	if len(f.data) == 0 {
		return 0, false
	}
	b := f.data[0]
	f.data = f.data[1:]
	return b, true
}

func (f *feedSource) add(s string) {
	f.data = append(f.data, s...)
}

// newTestConsole builds a console over an in-memory source and sink, clearing
// the sink after the initial prompt so tests assert only their own output.
func newTestConsole(t *testing.T, cfg Config) (*Console, *feedSource, *bytes.Buffer) {
	t.Helper()
	src := &feedSource{}
	out := &bytes.Buffer{}
	cfg.Source = src
	cfg.Sink = out
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out.Reset()
	return c, src, out
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{Sink: &bytes.Buffer{}}); err != ErrNoSource {
		t.Fatalf("missing source: got %v, want ErrNoSource", err)
	}
	if _, err := New(Config{Source: &feedSource{}}); err != ErrNoSink {
		t.Fatalf("missing sink: got %v, want ErrNoSink", err)
	}
}

func TestBannerAndPrompt(t *testing.T) {
	src := &feedSource{}
	out := &bytes.Buffer{}
	if _, err := New(Config{Source: src, Sink: out, Banner: "hi\r\n"}); err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := out.String(); got != "hi\r\n> " {
		t.Fatalf("startup output = %q, want %q", got, "hi\r\n> ")
	}
}

func TestRoundTripEcho(t *testing.T) {
	c, src, out := newTestConsole(t, Config{})
	src.add("hello world")
	c.Pump()
	if got := out.String(); got != "hello world" {
		t.Fatalf("echo = %q, want %q", got, "hello world")
	}
	if got := c.line.String(); got != "hello world" {
		t.Fatalf("line = %q, want %q", got, "hello world")
	}
}

func TestBackspaceEcho(t *testing.T) {
	c, src, out := newTestConsole(t, Config{})
	src.add("ab\x08")
	c.Pump()
	if got := out.String(); got != "ab\b \b" {
		t.Fatalf("echo = %q, want %q", got, "ab\b \b")
	}
	if got := c.line.String(); got != "a" {
		t.Fatalf("line = %q, want %q", got, "a")
	}

	// DEL erases like backspace; on an empty line neither echoes anything.
	out.Reset()
	src.add("\x7f\x08\x7f")
	c.Pump()
	if got := out.String(); got != "\b \b" {
		t.Fatalf("echo = %q, want a single erase for the remaining byte", got)
	}
}

func TestOverflowStopsEcho(t *testing.T) {
	c, src, out := newTestConsole(t, Config{LineCapacity: 4})
	src.add("abcdef")
	c.Pump()
	if got := out.String(); got != "abc" {
		t.Fatalf("echo = %q, want %q", got, "abc")
	}
	if got := c.line.String(); got != "abc" {
		t.Fatalf("line = %q, want %q", got, "abc")
	}
}

func TestDispatchArgs(t *testing.T) {
	var got []string
	cmds := []Command{{
		Name: "set",
		Handler: func(ctx *Context, args []string) {
			got = append([]string(nil), args...)
		},
	}}
	c, src, _ := newTestConsole(t, Config{Commands: cmds})
	src.add("set   rate  5\r")
	c.Pump()
	want := []string{"set", "rate", "5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if s := c.Stats(); s.Dispatched != 1 || s.Lines != 1 {
		t.Fatalf("stats = %+v, want one dispatched line", s)
	}
}

func TestDispatchArgLimit(t *testing.T) {
	var got []string
	cmds := []Command{{
		Name: "t",
		Handler: func(ctx *Context, args []string) {
			got = append([]string(nil), args...)
		},
	}}
	c, src, _ := newTestConsole(t, Config{Commands: cmds, MaxArgs: 3})
	src.add("t a b c d e\r")
	c.Pump()
	want := []string{"t", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownCommand(t *testing.T) {
	c, src, out := newTestConsole(t, Config{})
	src.add("bogus\r")
	c.Pump()
	want := "bogus\r\nUnknown command: bogus\r\nType 'help' for available commands.\r\n> "
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if s := c.Stats(); s.Unknown != 1 || s.Dispatched != 0 {
		t.Fatalf("stats = %+v, want one unknown", s)
	}
}

func TestEmptySubmit(t *testing.T) {
	c, src, out := newTestConsole(t, Config{})
	src.add("\r")
	c.Pump()
	if got := out.String(); got != "\r\n> " {
		t.Fatalf("output = %q, want %q", got, "\r\n> ")
	}
	if len(c.History()) != 0 {
		t.Fatalf("empty line recorded in history: %v", c.History())
	}
}

func TestAllSpaceLine(t *testing.T) {
	c, src, out := newTestConsole(t, Config{})
	src.add("   \r")
	c.Pump()
	if strings.Contains(out.String(), "Unknown") {
		t.Fatalf("all-space line reported unknown: %q", out.String())
	}
	if diff := cmp.Diff([]string{"   "}, c.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryBrowseEcho(t *testing.T) {
	c, src, out := newTestConsole(t, Config{})
	src.add("foo\rbar\r")
	c.Pump()
	out.Reset()

	// Up from an empty line loads the newest entry.
	src.add("\x1b[A")
	c.Pump()
	if got := out.String(); got != "\r> \r> bar" {
		t.Fatalf("first up: output = %q, want %q", got, "\r> \r> bar")
	}
	if c.line.String() != "bar" {
		t.Fatalf("first up: line = %q", c.line.String())
	}

	// Up again steps to the older entry, wiping the three visible bytes.
	out.Reset()
	src.add("\x1b[A")
	c.Pump()
	if got := out.String(); got != "\r>    \r> foo" {
		t.Fatalf("second up: output = %q, want %q", got, "\r>    \r> foo")
	}

	// Up at the oldest entry redraws it rather than moving.
	out.Reset()
	src.add("\x1b[A")
	c.Pump()
	if c.line.String() != "foo" {
		t.Fatalf("third up: line = %q, want %q", c.line.String(), "foo")
	}

	// Down returns toward the newest, then past it clears the line.
	src.add("\x1b[B")
	c.Pump()
	if c.line.String() != "bar" {
		t.Fatalf("down: line = %q, want %q", c.line.String(), "bar")
	}
	out.Reset()
	src.add("\x1b[B")
	c.Pump()
	if got := out.String(); got != "\r>    \r> " {
		t.Fatalf("down past newest: output = %q, want %q", got, "\r>    \r> ")
	}
	if c.line.Len() != 0 {
		t.Fatalf("down past newest: line = %q, want empty", c.line.String())
	}

	// Down without browsing does nothing.
	out.Reset()
	src.add("\x1b[B")
	c.Pump()
	if out.Len() != 0 {
		t.Fatalf("down while not browsing: output = %q, want none", out.String())
	}
}

func TestBrowseThenEditAndSubmit(t *testing.T) {
	var got []string
	cmds := []Command{{
		Name: "get",
		Handler: func(ctx *Context, args []string) {
			got = append([]string(nil), args...)
		},
	}}
	c, src, _ := newTestConsole(t, Config{Commands: cmds})
	src.add("get a\r")
	c.Pump()
	src.add("\x1b[A\x08b\r")
	c.Pump()
	want := []string{"get", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"get a", "get b"}, c.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestMalformedSequenceRecovers(t *testing.T) {
	c, src, out := newTestConsole(t, Config{})
	src.add("ab\x1b[Zc")
	c.Pump()
	if got := out.String(); got != "abc" {
		t.Fatalf("echo = %q, want %q", got, "abc")
	}
	if got := c.line.String(); got != "abc" {
		t.Fatalf("line = %q, want %q", got, "abc")
	}
	if s := c.Stats(); s.Dropped != 1 {
		t.Fatalf("stats = %+v, want one dropped byte", s)
	}
}

func TestSubmitResetsPendingSequence(t *testing.T) {
	c, src, _ := newTestConsole(t, Config{})
	src.add("\x1b\rab")
	c.Pump()
	if got := c.line.String(); got != "ab" {
		t.Fatalf("line = %q, want %q", got, "ab")
	}
}

func TestStatsBytes(t *testing.T) {
	c, src, _ := newTestConsole(t, Config{})
	src.add("abc\r")
	c.Pump()
	if s := c.Stats(); s.Bytes != 4 {
		t.Fatalf("stats.Bytes = %d, want 4", s.Bytes)
	}
}
