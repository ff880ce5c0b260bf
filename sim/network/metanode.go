package network

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/astrons/astrons/sim"
)

// propagatorFactory maps a propagator "type" field to a constructor,
// mirroring the original's `propagator_factory = {cls.__name__.lower():
// cls for cls in Propagator.__subclasses__()}` (§4.6 step 5). Only
// "static" ships with the core (SPEC_FULL supplemented feature 4); callers
// needing real orbit propagation register additional entries here before
// building the network.
var propagatorFactory = map[string]func(config map[string]sim.Value) sim.Propagator{
	"static": func(config map[string]sim.Value) sim.Propagator {
		return sim.StaticPropagator{
			Lat: sim.ConfigFloat(config, "lat", 0),
			Lon: sim.ConfigFloat(config, "lon", 0),
			Alt: sim.ConfigFloat(config, "alt", 0),
			X:   sim.ConfigFloat(config, "x", 0),
			Y:   sim.ConfigFloat(config, "y", 0),
			Z:   sim.ConfigFloat(config, "z", 0),
		}
	},
}

// RegisterPropagator adds or replaces a propagator constructor under
// typeTag (case-insensitive), for use by meta-node "propagator" blocks.
func RegisterPropagator(typeTag string, ctor func(config map[string]sim.Value) sim.Propagator) {
	propagatorFactory[strings.ToLower(typeTag)] = ctor
}

// buildMetaNode recursively loads and wires a meta-node's sub-graph (C8,
// §4.6): it resolves source/source_type into a nested RawConfig, composes
// the meta-node's own overrides and propagator, and delegates to Build for
// the nested scope (which performs its own, self-contained edge-wiring
// pass — §4.7 — exactly as the original's MetaNode.__init__ triggers a
// nested load_network_file/hook_up_node_pipes before renaming its
// sub_nodes into the enclosing namespace).
func (f *Factory) buildMetaNode(fullLabel string, config map[string]sim.Value, parentMeta *sim.MetaNode) ([]string, *sim.MetaNode, error) {
	source := sim.ConfigString(config, "source", "")
	if source == "" {
		return nil, nil, fmt.Errorf("metanode %s: \"source\" field not set", fullLabel)
	}
	sourceType := strings.ToLower(sim.ConfigString(config, "source_type", "file"))

	raw, err := f.MetaLoader(sourceType, source)
	if err != nil {
		return nil, nil, fmt.Errorf("metanode %s: %w", fullLabel, err)
	}

	meta := &sim.MetaNode{
		Label:     fullLabel,
		Parent:    parentMeta,
		Overrides: asOverrides(config["overrides"]),
	}

	if propCfg, ok := asSection(config["propagator"]); ok {
		typeTag := strings.ToLower(sim.ConfigString(propCfg, "type", "static"))
		ctor, ok := propagatorFactory[typeTag]
		if !ok {
			return nil, nil, fmt.Errorf("metanode %s: unknown propagator type %q", fullLabel, typeTag)
		}
		meta.Propagator = ctor(propCfg)
	}

	subLabels, err := f.Build(raw, fullLabel+"/", meta.Overrides, meta)
	if err != nil {
		return nil, nil, err
	}
	meta.SubNodes = subLabels
	return subLabels, meta, nil
}

// loadMetaSource is the default Factory.MetaLoader: it fetches a nested
// network description from a file path, an inline JSON string, or a REST
// endpoint returning JSON (§4.6 "source_type: file | json | rest").
func loadMetaSource(sourceType, source string) (RawConfig, error) {
	switch sourceType {
	case "file":
		return LoadFile(source)
	case "json":
		return ParseJSON([]byte(source))
	case "rest":
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("network: fetching %s: %w", source, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("network: reading response from %s: %w", source, err)
		}
		return ParseJSON(body)
	default:
		return nil, fmt.Errorf("network: unsupported meta-node source_type %q", sourceType)
	}
}

// asSection coerces a config value (a nested map, however the loader
// produced it) into a map[string]sim.Value, or reports ok=false.
func asSection(v sim.Value) (map[string]sim.Value, bool) {
	switch m := v.(type) {
	case map[string]sim.Value:
		return m, true
	default:
		return nil, false
	}
}

// asOverrides coerces a meta-node's "overrides" config value into the
// sub_label -> partial_config mapping (§4.6). Accepts whatever shape the
// loader produced it in (YAML/JSON nested maps).
func asOverrides(v sim.Value) map[string]map[string]sim.Value {
	out := make(map[string]map[string]sim.Value)
	raw, ok := asSection(v)
	if !ok {
		return out
	}
	for label, sectionVal := range raw {
		if section, ok := asSection(sectionVal); ok {
			out[label] = section
		}
	}
	return out
}
