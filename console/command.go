package console

import "strings"

// Handler is the callable behind a command name. It receives the full token
// list, including the command name as args[0].
type Handler func(ctx *Context, args []string)

// Command pairs a name with its handler. Names are matched case-sensitively.
type Command struct {
	Name    string
	Help    string
	Handler Handler
}

// Table is the ordered command table built once at configuration time and
// never mutated afterward. Registering a name twice keeps the first entry.
type Table struct {
	commands []Command
}

// NewTable copies cmds into an immutable table, dropping later duplicates.
func NewTable(cmds []Command) *Table {
	t := &Table{commands: make([]Command, 0, len(cmds))}
	seen := make(map[string]bool, len(cmds))
	for _, c := range cmds {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		t.commands = append(t.commands, c)
	}
	return t
}

// Lookup returns the first command registered under name.
func (t *Table) Lookup(name string) (Command, bool) {
	for _, c := range t.commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Matches returns up to max command names with the given prefix, in table
// order. An empty prefix matches nothing.
func (t *Table) Matches(prefix string, max int) []string {
	if prefix == "" || max <= 0 {
		return nil
	}
	var names []string
	for _, c := range t.commands {
		if len(names) == max {
			break
		}
		if strings.HasPrefix(c.Name, prefix) {
			names = append(names, c.Name)
		}
	}
	return names
}

// All returns the commands in registration order.
func (t *Table) All() []Command {
	out := make([]Command, len(t.commands))
	copy(out, t.commands)
	return out
}

// Len returns the number of registered commands.
func (t *Table) Len() int {
	return len(t.commands)
}
