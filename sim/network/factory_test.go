package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrons/astrons/sim"
)

// stubNode is a minimal Processor used to exercise edge wiring without
// pulling in the sim/nodes catalogue.
type stubNode struct {
	label string
}

func (s *stubNode) Label() string { return s.label }
func (s *stubNode) Process(now int64, msg sim.Message) (sim.Outcome, error) {
	return sim.Outcome{Reserve: 0, Delay: 0, Outputs: []sim.Message{msg.Clone()}}, nil
}

func stubCtor(_ *sim.Simulation, label string, _ map[string]sim.Value) (sim.Node, error) {
	return &stubNode{label: label}, nil
}

func newTestFactory() (*Factory, *sim.Simulation) {
	s := sim.NewSimulation(1, time.Unix(0, 0).UTC())
	r := sim.NewRegistry()
	r.Register("stub", stubCtor)
	return NewFactory(s, r), s
}

func TestFactory_Build_UnconditionalEdgeBroadcasts(t *testing.T) {
	f, s := newTestFactory()
	raw := RawConfig{
		"a": {"type": "stub", "b": ""},
		"b": {"type": "stub"},
	}

	created, err := f.Build(raw, "", nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, created)

	rtA, ok := s.Node("a")
	require.True(t, ok)
	assert.Equal(t, 1, rtA.Output().Targets())
}

func TestFactory_Build_SelectivePredicateEdge(t *testing.T) {
	f, s := newTestFactory()
	raw := RawConfig{
		"a": {"type": "stub", "b": "size_mbits > 10"},
		"b": {"type": "stub"},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.NoError(t, err)

	rtA, _ := s.Node("a")
	assert.Equal(t, 1, rtA.Output().Targets())
}

func TestFactory_Build_UnknownTypeIsFatal(t *testing.T) {
	f, _ := newTestFactory()
	raw := RawConfig{
		"a": {"type": "nonexistent-type"},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node type")
}

func TestFactory_Build_MissingTypeFieldIsFatal(t *testing.T) {
	f, _ := newTestFactory()
	raw := RawConfig{
		"a": {"foo": "bar"},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no \"type\" field")
}

func TestFactory_Build_DefaultSectionComposesIntoEverySection(t *testing.T) {
	f, s := newTestFactory()
	raw := RawConfig{
		DefaultSectionLabel: {"rate_per_mbit": 100.0},
		"a":                 {"type": "stub"},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.NoError(t, err)

	rtA, _ := s.Node("a")
	assert.Equal(t, 100.0, rtA.Config()["rate_per_mbit"])
}

func TestFactory_Build_SelfOverridesDefault(t *testing.T) {
	f, s := newTestFactory()
	raw := RawConfig{
		DefaultSectionLabel: {"rate_per_mbit": 100.0},
		"a":                 {"type": "stub", "rate_per_mbit": 50.0},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.NoError(t, err)

	rtA, _ := s.Node("a")
	assert.Equal(t, 50.0, rtA.Config()["rate_per_mbit"])
}

func TestFactory_Build_MalformedPredicateIsFatal(t *testing.T) {
	f, _ := newTestFactory()
	raw := RawConfig{
		"a": {"type": "stub", "b": "this is not parseable"},
		"b": {"type": "stub"},
	}

	_, err := f.Build(raw, "", nil, nil)
	require.Error(t, err, "an ill-formed predicate on a recognized edge must fail the load, not fall back to broadcast")
}
