// Package script lets hosts define console commands in Lua. Scripts declare
// commands through a small `cli` API table; the engine collects them and
// bridges handler invocations between the console and the Lua VM.
package script

import (
	"path/filepath"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"

	"github.com/drake/tinycli/console"
	"github.com/drake/tinycli/vars"
)

const regexCacheSize = 100

// Engine wraps gopher-lua and collects command definitions from scripts.
// It is a pure mechanism: it knows how to run Lua code and expose the API,
// not where scripts live. Like the console that invokes its handlers, it is
// single-threaded.
type Engine struct {
	L          *glua.LState
	regexCache *lru.Cache[string, *regexp.Regexp]

	// reg, when non-nil, backs the getvar/setvar API.
	reg *vars.Registry

	commands []console.Command

	// ctx is the console context of the handler call in flight; the print
	// API writes through it.
	ctx *console.Context
}

// NewEngine creates an Engine with a fresh Lua state and the cli API
// registered. reg may be nil when the host has no variable registry.
func NewEngine(reg *vars.Registry) *Engine {
	cache, _ := lru.New[string, *regexp.Regexp](regexCacheSize)
	e := &Engine{
		L:          glua.NewState(),
		regexCache: cache,
		reg:        reg,
	}
	e.registerAPI()
	return e
}

// Close tears down the Lua state. Commands returned earlier must not be
// invoked afterward.
func (e *Engine) Close() {
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// DoFile executes a Lua file. Its directory is temporarily prepended to
// package.path so local requires resolve.
func (e *Engine) DoFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	err = e.L.DoFile(absPath)

	e.L.SetField(pkg, "path", glua.LString(oldPath))
	return err
}

// DoString executes a raw string of Lua code. The name parameter is used for
// stack traces.
func (e *Engine) DoString(name, code string) error {
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// Commands returns the commands declared so far, in declaration order.
func (e *Engine) Commands() []console.Command {
	out := make([]console.Command, len(e.commands))
	copy(out, e.commands)
	return out
}

// wrap turns a Lua function into a console handler. The handler call is
// protected; a script error becomes console text instead of a crash.
func (e *Engine) wrap(fn *glua.LFunction) console.Handler {
	return func(ctx *console.Context, args []string) {
		if e.L == nil {
			return
		}
		prev := e.ctx
		e.ctx = ctx
		defer func() { e.ctx = prev }()

		tbl := e.L.NewTable()
		for i, a := range args {
			tbl.RawSetInt(i+1, glua.LString(a))
		}
		if err := e.L.CallByParam(glua.P{Fn: fn, NRet: 0, Protect: true}, tbl); err != nil {
			ctx.Println("script error: " + err.Error())
		}
	}
}

// compile returns a cached compiled regexp for pattern.
func (e *Engine) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := e.regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	e.regexCache.Add(pattern, re)
	return re, nil
}
