package console

import "fmt"

// Context is handed to a command handler for the duration of one invocation.
// It is the handler's only channel back to the console.
type Context struct {
	console *Console
}

// Print writes text to the console sink as-is. Handlers own their \r\n line
// endings, matching the byte-level output contract of the console.
func (x *Context) Print(text string) {
	x.console.emit(text)
}

// Println writes text followed by CRLF.
func (x *Context) Println(text string) {
	x.console.emit(text + "\r\n")
}

// Printf formats and writes to the console sink.
func (x *Context) Printf(format string, args ...any) {
	x.console.emit(fmt.Sprintf(format, args...))
}

// Commands returns the command table in registration order.
func (x *Context) Commands() []Command {
	return x.console.table.All()
}

// History returns the recorded history lines, oldest first.
func (x *Context) History() []string {
	return x.console.hist.Lines()
}

// Stats returns a snapshot of the console activity counters.
func (x *Context) Stats() Stats {
	return x.console.stats
}
