// Package vars implements the typed variable registry behind the get/set/list
// builtin commands: named bool, int, float and string values with
// descriptions, defaults and integer range clamping.
package vars

import (
	"strconv"
)

// Kind is the type of a registered variable.
type Kind int

const (
	Bool Kind = iota
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return "unknown"
}

// Var is one registered variable. Values are owned by the registry; hosts
// read them through the typed accessors.
type Var struct {
	Name string
	Desc string
	Kind Kind

	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string

	defBool  bool
	defInt   int64
	defFloat float64
	defStr   string

	min, max int64 // Int range, inclusive
}

// Bool returns the boolean value.
func (v *Var) Bool() bool { return v.boolVal }

// Int returns the integer value.
func (v *Var) Int() int64 { return v.intVal }

// Float returns the float value.
func (v *Var) Float() float64 { return v.floatVal }

// Text returns the string value.
func (v *Var) Text() string { return v.strVal }

// Set parses raw according to the variable's kind. Booleans accept "true",
// "on" and "1"; anything else means false. Integers clamp to the registered
// range; unparseable numbers become zero before clamping, so garbage input
// degrades instead of erroring.
func (v *Var) Set(raw string) {
	switch v.Kind {
	case Bool:
		v.boolVal = raw == "true" || raw == "on" || raw == "1"
	case Int:
		n, _ := strconv.ParseInt(raw, 10, 64)
		if n < v.min {
			n = v.min
		}
		if n > v.max {
			n = v.max
		}
		v.intVal = n
	case Float:
		f, _ := strconv.ParseFloat(raw, 64)
		v.floatVal = f
	case String:
		v.strVal = raw
	}
}

// SetBool sets a boolean variable directly.
func (v *Var) SetBool(b bool) {
	if v.Kind == Bool {
		v.boolVal = b
	}
}

// Format returns the display form of the current value.
func (v *Var) Format() string {
	switch v.Kind {
	case Bool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case Int:
		return strconv.FormatInt(v.intVal, 10)
	case Float:
		return strconv.FormatFloat(v.floatVal, 'f', 3, 64)
	case String:
		return v.strVal
	}
	return ""
}

func (v *Var) reset() {
	v.boolVal = v.defBool
	v.intVal = v.defInt
	v.floatVal = v.defFloat
	v.strVal = v.defStr
}

// Registry holds variables in registration order.
type Registry struct {
	vars  []*Var
	index map[string]*Var
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*Var)}
}

func (r *Registry) add(v *Var) *Var {
	if _, exists := r.index[v.Name]; exists {
		// First registration wins, same as the command table.
		return r.index[v.Name]
	}
	r.vars = append(r.vars, v)
	r.index[v.Name] = v
	return v
}

// BoolVar registers a boolean variable with its default.
func (r *Registry) BoolVar(name, desc string, def bool) *Var {
	return r.add(&Var{Name: name, Desc: desc, Kind: Bool, boolVal: def, defBool: def})
}

// IntVar registers an integer variable clamped to [min, max].
func (r *Registry) IntVar(name, desc string, def, min, max int64) *Var {
	return r.add(&Var{Name: name, Desc: desc, Kind: Int, intVal: def, defInt: def, min: min, max: max})
}

// FloatVar registers a float variable with its default.
func (r *Registry) FloatVar(name, desc string, def float64) *Var {
	return r.add(&Var{Name: name, Desc: desc, Kind: Float, floatVal: def, defFloat: def})
}

// StringVar registers a string variable with its default.
func (r *Registry) StringVar(name, desc, def string) *Var {
	return r.add(&Var{Name: name, Desc: desc, Kind: String, strVal: def, defStr: def})
}

// Lookup returns the variable registered under name.
func (r *Registry) Lookup(name string) (*Var, bool) {
	v, ok := r.index[name]
	return v, ok
}

// All returns the variables in registration order.
func (r *Registry) All() []*Var {
	out := make([]*Var, len(r.vars))
	copy(out, r.vars)
	return out
}

// Len returns the number of registered variables.
func (r *Registry) Len() int {
	return len(r.vars)
}

// Reset restores every variable to its default.
func (r *Registry) Reset() {
	for _, v := range r.vars {
		v.reset()
	}
}

// Bool is a convenience accessor; it returns false for unknown names.
func (r *Registry) Bool(name string) bool {
	if v, ok := r.index[name]; ok {
		return v.Bool()
	}
	return false
}

// Int is a convenience accessor; it returns zero for unknown names.
func (r *Registry) Int(name string) int64 {
	if v, ok := r.index[name]; ok {
		return v.Int()
	}
	return 0
}
