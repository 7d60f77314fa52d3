package tmpl

import (
	"maps"
	"slices"
)

// Hook renders one named section of a template. It writes its output to p;
// arg is the optional word following the hook name in the block.
type Hook func(p *Printer, arg string) error

// Scope is the fixed set of named slots a template may reference. Lookups
// that miss fall through to the parent scope.
type Scope struct {
	vars   map[string]string
	hooks  map[string]Hook
	parent *Scope
}

// NewScope creates an empty scope chained to parent (which may be nil).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		vars:   make(map[string]string),
		hooks:  make(map[string]Hook),
		parent: parent,
	}
}

// Set binds a value slot and returns the scope for chaining.
func (s *Scope) Set(name, value string) *Scope {
	s.vars[name] = value

	return s
}

// SetAll binds every entry of vars.
func (s *Scope) SetAll(vars map[string]string) *Scope {
	maps.Copy(s.vars, vars)

	return s
}

// SetHook binds a render hook and returns the scope for chaining.
func (s *Scope) SetHook(name string, h Hook) *Scope {
	s.hooks[name] = h

	return s
}

// Lookup resolves a value slot.
func (s *Scope) Lookup(name string) (string, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}

	return "", false
}

// Hook resolves a render hook.
func (s *Scope) Hook(name string) (Hook, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if h, ok := sc.hooks[name]; ok {
			return h, true
		}
	}

	return nil, false
}

// Names returns every slot name visible from s, sorted.
func (s *Scope) Names() []string {
	seen := make(map[string]struct{})

	for sc := s; sc != nil; sc = sc.parent {
		for name := range sc.vars {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}
