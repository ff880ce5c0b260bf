package nodes

import "github.com/astrons/astrons/sim"

// AndGate blocks messages until every one of its conditions has been
// satisfied by some message (not necessarily the same one), then opens and
// forwards (§8 scenario 3; grounded on nodes/core/network/and_gate.py). A
// condition's stored state only changes when an arriving message actually
// carries the field that condition talks about; messages silent on a
// field leave its condition's last verdict untouched. On gate-open, stored
// messages replay before the message that opened the gate, matching
// and_gate.py's time_sent-ascending sort of stored+opener.
type AndGate struct {
	label string

	conditions []gateCondition
	gateValues []bool

	timeDelay       int64
	processingDelay int64
	dropBlocked     bool
	blockedFIFO     bool
	storedMessages  []sim.Message
}

type gateCondition struct {
	field     string
	hasField  bool
	predicate sim.Predicate
}

// NewAndGate constructs an AndGate (type tag "andgate") from a
// "conditions" list of predicate source strings, time_delay,
// processing_delay, drop_blocked_messages (default true),
// blocked_messages_FIFO (default true).
func NewAndGate(_ *sim.Simulation, label string, config map[string]sim.Value) (sim.Node, error) {
	raw, _ := config["conditions"].([]any)
	conditions := make([]gateCondition, 0, len(raw))
	for _, c := range raw {
		source, _ := c.(string)
		pred, err := sim.CompilePredicate(source)
		if err != nil {
			return nil, err
		}
		field, hasField := sim.FieldOf(source)
		conditions = append(conditions, gateCondition{field: field, hasField: hasField, predicate: pred})
	}

	return &AndGate{
		label:           label,
		conditions:      conditions,
		gateValues:      make([]bool, len(conditions)),
		timeDelay:       sim.ConfigInt64(config, "time_delay", 0),
		processingDelay: sim.ConfigInt64(config, "processing_delay", 0),
		dropBlocked:     sim.ConfigBool(config, "drop_blocked_messages", true),
		blockedFIFO:     sim.ConfigBool(config, "blocked_messages_FIFO", true),
	}, nil
}

func (n *AndGate) Label() string { return n.label }

func (n *AndGate) Process(now int64, msg sim.Message) (sim.Outcome, error) {
	for i, c := range n.conditions {
		if c.hasField && !msg.Exists(c.field) {
			continue
		}
		n.gateValues[i] = c.predicate(now, msg)
	}

	open := len(n.conditions) > 0
	for _, v := range n.gateValues {
		if !v {
			open = false
			break
		}
	}

	reserve := n.processingDelay
	delay := n.timeDelay + n.processingDelay

	if !open {
		if !n.dropBlocked {
			n.storedMessages = append(n.storedMessages, msg.Clone())
		}
		return sim.Outcome{Reserve: reserve, Delay: delay}, nil
	}

	var outputs []sim.Message
	if !n.dropBlocked && len(n.storedMessages) > 0 {
		if n.blockedFIFO {
			outputs = append(outputs, n.storedMessages...)
		} else {
			for i := len(n.storedMessages) - 1; i >= 0; i-- {
				outputs = append(outputs, n.storedMessages[i])
			}
		}
		n.storedMessages = nil
	}
	outputs = append(outputs, msg.Clone())

	return sim.Outcome{Reserve: reserve, Delay: delay, Outputs: outputs}, nil
}
