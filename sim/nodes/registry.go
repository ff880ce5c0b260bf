package nodes

import "github.com/astrons/astrons/sim"

// Register binds every built-in node kind's type tag to its Constructor
// (C7). Called once at CLI startup before the network factory runs.
func Register(r *sim.Registry) {
	r.Register("source", NewSource)
	r.Register("randomdatagen", NewSource)
	r.Register("sink", NewSink)
	r.Register("delaysize", NewDelaySize)
	r.Register("passthrough", NewPassthrough)
	r.Register("addkeyvalue", NewPassthrough)
	r.Register("andgate", NewAndGate)
	r.Register("combiner", NewCombiner)
	r.Register("adder", NewCombiner)
	r.Register("partitioner", NewPartitioner)
	r.Register("brokersource", NewBrokerSource)
	r.Register("brokersink", NewBrokerSink)
}
