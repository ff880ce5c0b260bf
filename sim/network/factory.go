package network

import (
	"sort"
	"strings"

	"github.com/astrons/astrons/sim"
)

// Factory instantiates nodes from a parsed RawConfig and wires them into a
// Simulation (C9). It owns no state of its own beyond the Simulation and
// Registry it was built with, so the same Factory can load nested
// meta-node sub-graphs recursively.
type Factory struct {
	Sim      *sim.Simulation
	Registry *sim.Registry

	// MetaLoader fetches a nested network description for a meta-node's
	// source/source_type (file, json, rest — §4.6). Exposed for testing;
	// defaults to the local/HTTP-backed loadMetaSource.
	MetaLoader func(sourceType, source string) (RawConfig, error)
}

// NewFactory builds a Factory over an existing Simulation and Registry.
func NewFactory(s *sim.Simulation, r *sim.Registry) *Factory {
	f := &Factory{Sim: s, Registry: r}
	f.MetaLoader = loadMetaSource
	return f
}

// composeConfig merges a DEFAULT section, a node's own section, and (for
// sub-nodes of a meta-node) a parent override, in that precedence order —
// later wins (§4.6, SPEC_FULL Open Question "DEFAULT vs. parent-override
// precedence").
func composeConfig(defaults, self, override map[string]sim.Value) map[string]sim.Value {
	out := make(map[string]sim.Value, len(defaults)+len(self)+len(override))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range self {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// BuildFile loads filename and builds the top-level network (no enclosing
// meta-node, no prefix, no override). It returns the fully-qualified
// labels of every node created.
func (f *Factory) BuildFile(filename string) ([]string, error) {
	raw, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	return f.Build(raw, "", nil, nil)
}

// Build instantiates every section of raw at this level: DEFAULT
// composition, type resolution, node construction (recursing into
// meta-nodes), and the §4.7 edge-wiring second pass scoped to exactly the
// nodes created in this call. prefix namespaces labels ("" at the top
// level, "<meta_label>/" inside a meta-node); overrides is the enclosing
// meta-node's per-sub-label override map, or nil at the top level.
func (f *Factory) Build(raw RawConfig, prefix string, overrides map[string]map[string]sim.Value, parentMeta *sim.MetaNode) ([]string, error) {
	var errs sim.ConfigErrors

	defaults := raw[DefaultSectionLabel]

	var created []string
	localMap := make(map[string]*sim.NodeRuntime)

	labels := make([]string, 0, len(raw))
	for rawLabel := range raw {
		labels = append(labels, rawLabel)
	}
	sort.Strings(labels)

	for _, rawLabel := range labels {
		self := raw[rawLabel]
		if rawLabel == DefaultSectionLabel {
			continue
		}
		fullLabel := prefix + rawLabel

		config := composeConfig(defaults, self, overrides[rawLabel])
		typeTag := sim.ConfigString(config, "type", "")
		if typeTag == "" {
			errs.Add(fullLabel, "config has no \"type\" field")
			continue
		}

		if strings.EqualFold(typeTag, "metanode") {
			// A meta-node's sub-graph is wired entirely within its own
			// scope (buildMetaNode recurses into Build, which runs its
			// own wireEdges pass over the nested description). The
			// meta-node's own label is a namespace prefix, never a node
			// in this level's edge graph — mirroring the original, where
			// the MetaNode instance itself is never added to new_nodes,
			// only its (already-wired, already-renamed) sub_nodes are.
			subLabels, _, err := f.buildMetaNode(fullLabel, config, parentMeta)
			if err != nil {
				errs.Add(fullLabel, err.Error())
				continue
			}
			created = append(created, subLabels...)
			continue
		}

		ctor, ok := f.Registry.Lookup(typeTag)
		if !ok {
			errs.Add(fullLabel, "unknown node type "+typeTag+"; known types: "+strings.Join(f.Registry.KnownTypes(), ", "))
			continue
		}

		node, err := ctor(f.Sim, fullLabel, config)
		if err != nil {
			errs.Add(fullLabel, err.Error())
			continue
		}

		rt := f.Sim.AddNode(node, config, nil, nil)
		if parentMeta != nil {
			rt.SetMetaNode(parentMeta)
		}
		created = append(created, fullLabel)
		localMap[strings.ToLower(rawLabel)] = rt
	}

	if !errs.Empty() {
		return created, errs.AsError()
	}

	if wireErrs := f.wireEdges(raw, defaults, overrides, localMap); !wireErrs.Empty() {
		return created, wireErrs.AsError()
	}

	return created, nil
}

// valueToString renders a config value as an edge's route expression: an
// empty string means "unconditional", matching the original's falsy-string
// check on route_options before treating it as a predicate.
func valueToString(v sim.Value) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if !s {
			return ""
		}
		return "true"
	default:
		return sim.ConfigString(map[string]sim.Value{"v": v}, "v", "")
	}
}

// wireEdges implements hook_up_node_pipes (§4.7): for each node created at
// this level, for each key in its composed config, if the key names
// another node created at this same level, attach an edge — selective
// (predicate-gated) if the value is non-empty, unconditional broadcast
// otherwise. Pipes and NodePipes are reused across multiple incoming edges
// via NodeRuntime.Input/Output. An edge value that fails to parse as a
// predicate is a configuration error (§7 "ill-formed predicate": fatal at
// load time, as networkfactory.py's parse_predicate exits rather than
// falling back to broadcast), collected into the returned ConfigErrors
// rather than silently downgraded.
func (f *Factory) wireEdges(raw RawConfig, defaults map[string]sim.Value, overrides map[string]map[string]sim.Value, localMap map[string]*sim.NodeRuntime) sim.ConfigErrors {
	var errs sim.ConfigErrors

	labels := make([]string, 0, len(raw))
	for rawLabel := range raw {
		labels = append(labels, rawLabel)
	}
	sort.Strings(labels)

	for _, rawLabel := range labels {
		self := raw[rawLabel]
		if rawLabel == DefaultSectionLabel {
			continue
		}
		fromRT, ok := localMap[strings.ToLower(rawLabel)]
		if !ok {
			// A meta-node's own label never resolves to a NodeRuntime —
			// only its namespaced sub-nodes do (§4.6).
			continue
		}

		config := composeConfig(defaults, self, overrides[rawLabel])
		keys := make([]string, 0, len(config))
		for key := range config {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			value := config[key]
			if reservedKeys[strings.ToLower(key)] {
				continue
			}
			toRT, ok := localMap[strings.ToLower(key)]
			if !ok {
				continue
			}

			inPipe := toRT.Input()
			outPipe := fromRT.Output()

			routeExpr := valueToString(value)
			if routeExpr != "" {
				pred, err := sim.CompilePredicate(routeExpr)
				if err != nil {
					errs.Add(fromRT.Label(), "edge to \""+toRT.Label()+"\": "+err.Error())
					continue
				}
				outPipe.AddSelective(inPipe, pred, routeExpr)
			} else {
				outPipe.AddBroadcast(inPipe)
			}
		}
	}

	return errs
}
