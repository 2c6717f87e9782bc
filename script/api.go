package script

import (
	glua "github.com/yuin/gopher-lua"

	"github.com/drake/tinycli/console"
	"github.com/drake/tinycli/vars"
)

// registerAPI installs the global cli table.
func (e *Engine) registerAPI() {
	t := e.L.NewTable()
	e.L.SetGlobal("cli", t)

	// cli.command(name, help, fn): declare a console command
	e.L.SetField(t, "command", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		help := L.CheckString(2)
		fn := L.CheckFunction(3)
		e.commands = append(e.commands, console.Command{
			Name:    name,
			Help:    help,
			Handler: e.wrap(fn),
		})
		return 0
	}))

	// cli.print(text): write a line to the console. Only valid during a
	// handler call; outside one it is a no-op.
	e.L.SetField(t, "print", e.L.NewFunction(func(L *glua.LState) int {
		text := L.CheckString(1)
		if e.ctx != nil {
			e.ctx.Println(text)
		}
		return 0
	}))

	// cli.match(pattern, text): regex submatch via a compiled-pattern
	// cache. Returns a table of groups (full match first) or nil, plus an
	// error message for a bad pattern.
	e.L.SetField(t, "match", e.L.NewFunction(func(L *glua.LState) int {
		pattern := L.CheckString(1)
		text := L.CheckString(2)

		re, err := e.compile(pattern)
		if err != nil {
			L.Push(glua.LNil)
			L.Push(glua.LString(err.Error()))
			return 2
		}
		matches := re.FindStringSubmatch(text)
		if matches == nil {
			L.Push(glua.LNil)
			return 1
		}
		tbl := L.NewTable()
		for i, m := range matches {
			tbl.RawSetInt(i+1, glua.LString(m))
		}
		L.Push(tbl)
		return 1
	}))

	// cli.getvar(name): read a registry variable, nil when unknown
	e.L.SetField(t, "getvar", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		if e.reg == nil {
			L.Push(glua.LNil)
			return 1
		}
		v, ok := e.reg.Lookup(name)
		if !ok {
			L.Push(glua.LNil)
			return 1
		}
		switch v.Kind {
		case vars.Bool:
			L.Push(glua.LBool(v.Bool()))
		case vars.Int:
			L.Push(glua.LNumber(v.Int()))
		case vars.Float:
			L.Push(glua.LNumber(v.Float()))
		default:
			L.Push(glua.LString(v.Text()))
		}
		return 1
	}))

	// cli.setvar(name, value): set a registry variable, reporting success
	e.L.SetField(t, "setvar", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		raw := L.Get(2).String()
		if e.reg == nil {
			L.Push(glua.LFalse)
			return 1
		}
		v, ok := e.reg.Lookup(name)
		if !ok {
			L.Push(glua.LFalse)
			return 1
		}
		v.Set(raw)
		L.Push(glua.LTrue)
		return 1
	}))
}
