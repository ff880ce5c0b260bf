package network

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// ParseINI parses an INI network description into a RawConfig: each
// section is a label, each key/value within it a config entry. INI has no
// native typed values, so every value decodes as a string; node
// constructors read them through sim.ConfigFloat/ConfigBool, which coerce
// strings the same way the YAML/JSON paths' already-typed values do.
//
// gopkg.in/ini.v1 is not used by any example repo in the retrieval pack;
// it is the standard ecosystem library for this exact format and is
// documented as an out-of-pack addition in DESIGN.md (§6 requires INI
// support and no pack repo parses INI).
func ParseINI(data []byte) (RawConfig, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, data)
	if err != nil {
		return nil, fmt.Errorf("network: invalid ini network description: %w", err)
	}

	out := make(RawConfig)
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		fields := make(map[string]any, len(section.Keys()))
		for _, key := range section.Keys() {
			fields[key.Name()] = key.Value()
		}
		out[name] = fields
	}
	return out, nil
}
