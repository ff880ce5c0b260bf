package network

import (
	"fmt"

	"github.com/astrons/astrons/sim"
	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML network description into a RawConfig (§6 —
// "Three accepted: INI, JSON, YAML... all parse to a mapping label →
// config").
func ParseYAML(data []byte) (RawConfig, error) {
	var doc map[string]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("network: invalid yaml network description: %w", err)
	}
	return fromGenericMap(doc), nil
}

// fromGenericMap normalizes a decoded map[string]map[string]any (as YAML
// and JSON both produce) into a RawConfig.
func fromGenericMap(doc map[string]map[string]any) RawConfig {
	out := make(RawConfig, len(doc))
	for label, fields := range doc {
		section := make(map[string]sim.Value, len(fields))
		for k, v := range fields {
			section[k] = normalizeYAMLValue(v)
		}
		out[label] = section
	}
	return out
}

// normalizeYAMLValue recursively converts map[any]any (which gopkg.in/yaml.v3
// can still produce for deeply nested untyped values) into map[string]any,
// keeping the rest of the loader format-agnostic.
func normalizeYAMLValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAMLValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAMLValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalizeYAMLValue(vv)
		}
		return out
	default:
		return v
	}
}
