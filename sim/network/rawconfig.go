// Package network implements the declarative network description loader
// (C7 registry glue, C8 meta-node loader, C9 network factory): parsing
// INI/JSON/YAML descriptions into a label→config mapping, instantiating
// nodes through a sim.Registry, and wiring Pipes/NodePipes according to the
// edge convention of §4.7.
package network

import "github.com/astrons/astrons/sim"

// reservedKeys are config keys that never denote an outgoing edge
// (§4.6, §4.7).
var reservedKeys = map[string]bool{
	"type":        true,
	"source":      true,
	"source_type": true,
	"overrides":   true,
	"propagator":  true,
}

// RawConfig is a parsed network description: label → its config mapping,
// before DEFAULT composition or edge resolution (§3, §4.7).
type RawConfig map[string]map[string]sim.Value

// DefaultSectionLabel is the reserved inheritance-base label (§4.7 step 1).
const DefaultSectionLabel = "DEFAULT"
