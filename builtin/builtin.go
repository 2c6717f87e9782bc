// Package builtin provides the standard console command set over a variable
// registry: help, info, list (with its vars alias), get, set, status, reset
// and history.
package builtin

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/drake/tinycli/console"
	"github.com/drake/tinycli/vars"
)

// Version reported by the info command.
const Version = "1.0.0"

// Column widths for the list output.
const (
	nameCol  = 17
	typeCol  = 8
	valueCol = 12
)

type builtins struct {
	reg   *vars.Registry
	start time.Time
}

// Commands returns the builtin command set bound to reg, in table order.
func Commands(reg *vars.Registry) []console.Command {
	b := &builtins{reg: reg, start: time.Now()}
	return []console.Command{
		{Name: "help", Help: "Show this help message", Handler: b.help},
		{Name: "info", Help: "Show build information", Handler: b.info},
		{Name: "list", Help: "List all variables with descriptions", Handler: b.list},
		{Name: "vars", Help: "Alias for list", Handler: b.list},
		{Name: "get", Help: "Get variable value", Handler: b.get},
		{Name: "set", Help: "Set variable value", Handler: b.set},
		{Name: "status", Help: "Show session status summary", Handler: b.status},
		{Name: "reset", Help: "Reset all variables to defaults", Handler: b.reset},
		{Name: "history", Help: "Show command history", Handler: b.history},
	}
}

func (b *builtins) help(ctx *console.Context, args []string) {
	ctx.Println("=== Commands ===")
	for _, cmd := range ctx.Commands() {
		ctx.Println("  " + runewidth.FillRight(cmd.Name, nameCol) + cmd.Help)
	}
	ctx.Println("")
	ctx.Println("Navigation:")
	ctx.Println("  Up/Down arrows   Navigate command history")
	ctx.Println("  Tab              Auto-complete commands")
	ctx.Println("  Backspace        Delete character")
}

func (b *builtins) info(ctx *console.Context, args []string) {
	ctx.Println("=== System Information ===")
	ctx.Println("Engine:       tinycli console")
	ctx.Println("Version:      " + Version)
	ctx.Printf("Variables:    %d\r\n", b.reg.Len())
	ctx.Printf("Commands:     %d\r\n", len(ctx.Commands()))
}

func (b *builtins) list(ctx *console.Context, args []string) {
	ctx.Println("Variable Name    Type    Value       Description")
	ctx.Println("==============================================================")
	for _, v := range b.reg.All() {
		ctx.Println(runewidth.FillRight(v.Name, nameCol) +
			runewidth.FillRight(v.Kind.String(), typeCol) +
			runewidth.FillRight(v.Format(), valueCol) +
			v.Desc)
	}
}

func (b *builtins) get(ctx *console.Context, args []string) {
	if len(args) < 2 {
		ctx.Println("Usage: get <var>")
		return
	}
	v, ok := b.reg.Lookup(args[1])
	if !ok {
		ctx.Println("Unknown variable: " + args[1])
		return
	}
	ctx.Println(v.Name + " = " + v.Format())
}

func (b *builtins) set(ctx *console.Context, args []string) {
	if len(args) < 3 {
		ctx.Println("Usage: set <var> <value>")
		return
	}
	v, ok := b.reg.Lookup(args[1])
	if !ok {
		ctx.Println("Unknown variable: " + args[1])
		return
	}
	v.Set(args[2])
	ctx.Println(v.Name + " = " + v.Format())
}

func (b *builtins) status(ctx *console.Context, args []string) {
	st := ctx.Stats()
	ctx.Println("=== Session Status ===")
	ctx.Println("Uptime:       " + time.Since(b.start).Round(time.Second).String())
	ctx.Printf("Bytes in:     %d\r\n", st.Bytes)
	ctx.Printf("Submits:      %d\r\n", st.Lines)
	ctx.Printf("Dispatched:   %d\r\n", st.Dispatched)
	ctx.Printf("Unknown:      %d\r\n", st.Unknown)
	ctx.Println("")
	for _, v := range b.reg.All() {
		if v.Kind != vars.Bool {
			continue
		}
		state := "DISABLED"
		if v.Bool() {
			state = "ENABLED"
		}
		ctx.Println(runewidth.FillRight(v.Name+":", nameCol) + state)
	}
}

func (b *builtins) reset(ctx *console.Context, args []string) {
	b.reg.Reset()
	ctx.Println("All variables reset to defaults")
}

func (b *builtins) history(ctx *console.Context, args []string) {
	for i, line := range ctx.History() {
		ctx.Println(fmt.Sprintf("%3d  %s", i+1, line))
	}
}
