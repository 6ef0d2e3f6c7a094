package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	keys map[string]Action
}

// NewResolver indexes bindings by key. A later binding of a key replaces an
// earlier one.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{keys: make(map[string]Action, len(bindings)*2)}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.keys[k] = b.Action
		}
	}
	return r
}

// Resolve returns the action bound to key, or "".
func (r *Resolver) Resolve(key string) Action {
	return r.keys[key]
}

// ResolveFocused is Resolve for when a text input may hold focus: the input
// gets every key except ctrl+c.
func (r *Resolver) ResolveFocused(key string, inputFocused bool) Action {
	if inputFocused && key != "ctrl+c" {
		return ""
	}
	return r.keys[key]
}
