package slant

// Scope is one frame of name-to-value bindings: the root frame for the
// whole run, or one ephemeral frame per function call.
type Scope struct {
	vars map[string]Value
}

func NewScope() *Scope {
	return &Scope{
		vars: make(map[string]Value),
	}
}

// Define binds name in this frame, shadowing any outer binding.
func (s *Scope) Define(name string, v Value) {
	s.vars[name] = v
}

func (s *Scope) has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// ScopeChain is the ordered list of active frames, innermost first. Frames
// are owned by the call that created them; chains are extended by
// prepending, never mutated in place.
type ScopeChain []*Scope

// Lookup resolves name by scanning from the innermost frame outwards.
func (c ScopeChain) Lookup(name string) (Value, bool) {
	for _, s := range c {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Assign rebinds name in the innermost frame that already defines it, so
// an inner frame can overwrite an enclosing binding without shadowing it.
// A genuinely new name is created in the innermost frame only.
func (c ScopeChain) Assign(name string, v Value) {
	for _, s := range c {
		if s.has(name) {
			s.vars[name] = v
			return
		}
	}

	c[0].Define(name, v)
}

// push returns a new chain with s as the innermost frame.
func (c ScopeChain) push(s *Scope) ScopeChain {
	chain := make(ScopeChain, 0, len(c)+1)
	chain = append(chain, s)

	return append(chain, c...)
}
