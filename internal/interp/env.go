package interp

// frame is one function activation: local bindings plus the set of
// names a `global` statement redirected to module scope. A nil frame
// means module scope, where every name is global.
type frame struct {
	locals      map[string]Value
	globalDecls map[string]struct{}
}

func newFrame() *frame {
	return &frame{
		locals:      make(map[string]Value),
		globalDecls: make(map[string]struct{}),
	}
}

func (fr *frame) isGlobal(name string) bool {
	if fr == nil {
		return true
	}
	_, ok := fr.globalDecls[name]
	return ok
}

// load resolves a name: declared-global and module-scope names read the
// interpreter globals, everything else the frame locals.
func (in *Interp) load(fr *frame, name string) (Value, bool) {
	if !fr.isGlobal(name) {
		if v, ok := fr.locals[name]; ok {
			return v, true
		}
		// Fall through: an unassigned local still sees module scope,
		// matching read-only access to globals without a declaration.
	}
	v, ok := in.globals[name]
	return v, ok
}

// store binds a name: into globals when at module scope or declared
// global, into frame locals otherwise.
func (in *Interp) store(fr *frame, name string, v Value) {
	if fr.isGlobal(name) {
		in.globals[name] = v
		return
	}
	fr.locals[name] = v
}
