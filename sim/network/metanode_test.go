package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrons/astrons/sim"
)

func TestFactory_Build_MetaNodeWithInlineJSONSource(t *testing.T) {
	f, s := newTestFactory()
	raw := RawConfig{
		"cluster1": {
			"type":        "metanode",
			"source_type": "json",
			"source":      `{"inner": {"type": "stub"}}`,
		},
	}

	created, err := f.Build(raw, "", nil, nil)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "cluster1/inner", created[0])

	rt, ok := s.Node("cluster1/inner")
	require.True(t, ok)
	require.NotNil(t, rt.MetaNode())
	assert.Equal(t, "cluster1", rt.MetaNode().Label)
}

func TestFactory_Build_MetaNodeOverridesApplyToSubNode(t *testing.T) {
	f, s := newTestFactory()
	raw := RawConfig{
		"cluster1": {
			"type":        "metanode",
			"source_type": "json",
			"source":      `{"inner": {"type": "stub", "rate_per_mbit": 10}}`,
			"overrides": map[string]any{
				"inner": map[string]any{"rate_per_mbit": 999},
			},
		},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.NoError(t, err)

	rt, ok := s.Node("cluster1/inner")
	require.True(t, ok)
	assert.EqualValues(t, 999, rt.Config()["rate_per_mbit"], "parent override must win over the sub-graph's own value")
}

func TestFactory_Build_MetaNodePropagatorResolvesLocation(t *testing.T) {
	f, s := newTestFactory()
	raw := RawConfig{
		"sat1": {
			"type":        "metanode",
			"source_type": "json",
			"source":      `{"bus": {"type": "stub"}}`,
			"propagator": map[string]any{
				"type": "static",
				"lat":  12.5,
				"lon":  -70.0,
				"alt":  500000.0,
			},
		},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.NoError(t, err)

	rt, ok := s.Node("sat1/bus")
	require.True(t, ok)

	lat, lon, alt, _, ok := rt.LocationAt(0)
	require.True(t, ok)
	assert.Equal(t, 12.5, lat)
	assert.Equal(t, -70.0, lon)
	assert.Equal(t, 500000.0, alt)
}

func TestFactory_Build_MetaNodeMissingSourceIsFatal(t *testing.T) {
	f, _ := newTestFactory()
	raw := RawConfig{
		"cluster1": {"type": "metanode"},
	}

	_, err := f.Build(raw, "", nil, nil)
	assert.Error(t, err)
}

func TestMetaNode_LocationAt_FallsBackToParentChain(t *testing.T) {
	parent := &sim.MetaNode{Label: "outer", Propagator: sim.StaticPropagator{Lat: 1, Lon: 2, Alt: 3}}
	child := &sim.MetaNode{Label: "inner", Parent: parent}

	lat, lon, alt, _, ok := child.LocationAt(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, 2.0, lon)
	assert.Equal(t, 3.0, alt)
}

func TestMetaNode_LocationAt_NoPropagatorAnywhereReportsNotOK(t *testing.T) {
	n := &sim.MetaNode{Label: "lonely"}
	_, _, _, _, ok := n.LocationAt(0)
	assert.False(t, ok)
}
