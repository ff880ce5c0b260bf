package sim

// MetaNode is a container that loads a sub-graph from a nested network
// description and optionally attaches a Propagator (C8, §3). It is not
// itself a Node driven by the runtime — it is pure bookkeeping consulted
// by its sub-nodes' GetLocation/GetCoordinates helpers and by the loader
// when applying overrides.
type MetaNode struct {
	Label      string
	Propagator Propagator
	SubNodes   []string // fully-qualified labels of instantiated sub-nodes
	Parent     *MetaNode
	Overrides  map[string]map[string]Value // sub_label -> partial_config (§4.6)
}

// LocationAt delegates to the attached Propagator, or reports ok=false if
// this meta-node (or any ancestor) has none.
func (m *MetaNode) LocationAt(simtime int64) (lat, lon, alt float64, velocity [3]float64, ok bool) {
	for n := m; n != nil; n = n.Parent {
		if n.Propagator != nil {
			lat, lon, alt, velocity = n.Propagator.LocationAt(simtime)
			return lat, lon, alt, velocity, true
		}
	}
	return 0, 0, 0, [3]float64{}, false
}

// CoordinatesAt delegates to the attached Propagator, or reports ok=false.
func (m *MetaNode) CoordinatesAt(simtime int64) (position, velocity [3]float64, ok bool) {
	for n := m; n != nil; n = n.Parent {
		if n.Propagator != nil {
			position, velocity = n.Propagator.CoordinatesAt(simtime)
			return position, velocity, true
		}
	}
	return [3]float64{}, [3]float64{}, false
}
