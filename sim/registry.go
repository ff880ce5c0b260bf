package sim

import (
	"sort"
	"strings"
)

// Registry maps a lowercased type tag to a node Constructor (C7). It
// replaces the original's module-level `node_factory = {cls.__name__...}`
// dict with an explicit, instantiable object (§9 DESIGN NOTES), populated
// once at startup by a fixed set of Register calls (see sim/nodes).
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register binds a type tag (case-insensitive) to its Constructor.
// Re-registering a tag overwrites the previous binding, matching the
// original's dict-literal semantics (last definition wins).
func (r *Registry) Register(typeTag string, ctor Constructor) {
	r.ctors[strings.ToLower(typeTag)] = ctor
}

// Lookup returns the Constructor for typeTag (case-insensitive), or false
// if unknown.
func (r *Registry) Lookup(typeTag string) (Constructor, bool) {
	ctor, ok := r.ctors[strings.ToLower(typeTag)]
	return ctor, ok
}

// KnownTypes returns every registered type tag, sorted, for use in the
// fatal "unknown node type" error message (§4.6, §7 — "listing all known
// types").
func (r *Registry) KnownTypes() []string {
	types := make([]string, 0, len(r.ctors))
	for t := range r.ctors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
