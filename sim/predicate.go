package sim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Predicate is a precompiled, side-effect-free boolean function over
// (simtime, message) (§4.5, §9 GLOSSARY). Evaluating a Predicate must
// never mutate msg.
type Predicate func(simtime int64, msg Message) bool

// resolveField resolves a predicate's left-hand field, special-casing the
// pseudo-field SimTime, mirroring the original's single left_side_value
// helper (§9 GLOSSARY; SPEC_FULL supplemented feature #2).
func resolveField(simtime int64, msg Message, field string) (Value, bool) {
	if field == "SimTime" {
		return simtime, true
	}
	return msg.Get(field)
}

type predicatePattern struct {
	name    string
	re      *regexp.Regexp
	compile func(groups []string) (Predicate, error)
}

// predicatePatterns lists the compiled pattern table in priority order:
// the first pattern whose regex matches the source text wins.
var predicatePatterns = []predicatePattern{
	{
		name: "gt",
		re:   regexp.MustCompile(`^(.*) > (.*)$`),
		compile: func(g []string) (Predicate, error) {
			field, threshold, err := fieldAndFloat(g)
			if err != nil {
				return nil, err
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return false
				}
				return toFloat(v) > threshold
			}, nil
		},
	},
	{
		name: "gte",
		re:   regexp.MustCompile(`^(.*) >= (.*)$`),
		compile: func(g []string) (Predicate, error) {
			field, threshold, err := fieldAndFloat(g)
			if err != nil {
				return nil, err
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return false
				}
				return toFloat(v) >= threshold
			}, nil
		},
	},
	{
		name: "lt",
		re:   regexp.MustCompile(`^(.*) < (.*)$`),
		compile: func(g []string) (Predicate, error) {
			field, threshold, err := fieldAndFloat(g)
			if err != nil {
				return nil, err
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return false
				}
				return toFloat(v) < threshold
			}, nil
		},
	},
	{
		name: "lte",
		re:   regexp.MustCompile(`^(.*) <= (.*)$`),
		compile: func(g []string) (Predicate, error) {
			field, threshold, err := fieldAndFloat(g)
			if err != nil {
				return nil, err
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return false
				}
				return toFloat(v) <= threshold
			}, nil
		},
	},
	{
		name: "eq",
		re:   regexp.MustCompile(`^(.*) == (.*)$`),
		compile: func(g []string) (Predicate, error) {
			field, rhs := strings.TrimSpace(g[1]), strings.TrimSpace(g[2])
			if rhsFloat, isNum := asFloat(rhs); isNum {
				return func(now int64, m Message) bool {
					v, ok := resolveField(now, m, field)
					if !ok {
						return false
					}
					return toFloat(v) == rhsFloat
				}, nil
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return false
				}
				return stringify(v) == rhs
			}, nil
		},
	},
	{
		name: "neq",
		re:   regexp.MustCompile(`^(.*) != (.*)$`),
		compile: func(g []string) (Predicate, error) {
			field, rhs := strings.TrimSpace(g[1]), strings.TrimSpace(g[2])
			if rhsFloat, isNum := asFloat(rhs); isNum {
				return func(now int64, m Message) bool {
					v, ok := resolveField(now, m, field)
					if !ok {
						return true
					}
					return toFloat(v) != rhsFloat
				}, nil
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return true
				}
				return stringify(v) != rhs
			}, nil
		},
	},
	{
		name: "exists",
		re:   regexp.MustCompile(`^(.*) EXISTS$`),
		compile: func(g []string) (Predicate, error) {
			field := strings.TrimSpace(g[1])
			return func(_ int64, m Message) bool { return m.Exists(field) }, nil
		},
	},
	{
		name: "missing",
		re:   regexp.MustCompile(`^(.*) MISSING$`),
		compile: func(g []string) (Predicate, error) {
			field := strings.TrimSpace(g[1])
			return func(_ int64, m Message) bool { return !m.Exists(field) }, nil
		},
	},
	{
		name: "regex",
		re:   regexp.MustCompile(`^(.*) regex '(.*)'$`),
		compile: func(g []string) (Predicate, error) {
			field := strings.TrimSpace(g[1])
			re, err := regexp.Compile(g[2])
			if err != nil {
				return nil, fmt.Errorf("sim: invalid regex predicate %q: %w", g[2], err)
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return false
				}
				return re.MatchString(stringify(v))
			}, nil
		},
	},
	{
		name: "failed_reg",
		re:   regexp.MustCompile(`^(.*) failed_reg '(.*)'$`),
		compile: func(g []string) (Predicate, error) {
			field := strings.TrimSpace(g[1])
			re, err := regexp.Compile(g[2])
			if err != nil {
				return nil, fmt.Errorf("sim: invalid regex predicate %q: %w", g[2], err)
			}
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return true
				}
				return !re.MatchString(stringify(v))
			}, nil
		},
	},
	{
		name: "percentage",
		re:   regexp.MustCompile(`^(.*) <=> (.*)$`),
		compile: func(g []string) (Predicate, error) {
			start, err := strconv.Atoi(strings.TrimSpace(g[1]))
			if err != nil {
				return nil, fmt.Errorf("sim: invalid percentage predicate start %q: %w", g[1], err)
			}
			end, err := strconv.Atoi(strings.TrimSpace(g[2]))
			if err != nil {
				return nil, fmt.Errorf("sim: invalid percentage predicate end %q: %w", g[2], err)
			}
			return func(_ int64, m Message) bool {
				v := int(m.GetFloat(KeyRandomRouterValue))
				return v >= start && v <= end
			}, nil
		},
	},
	{
		name: "starts_with",
		re:   regexp.MustCompile(`^(.*) starts_with (.*)$`),
		compile: func(g []string) (Predicate, error) {
			field, prefix := strings.TrimSpace(g[1]), strings.TrimSpace(g[2])
			return func(now int64, m Message) bool {
				v, ok := resolveField(now, m, field)
				if !ok {
					return false
				}
				return strings.HasPrefix(stringify(v), prefix)
			}, nil
		},
	},
}

func fieldAndFloat(groups []string) (string, float64, error) {
	field := strings.TrimSpace(groups[1])
	threshold, err := strconv.ParseFloat(strings.TrimSpace(groups[2]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("sim: non-numeric threshold %q: %w", groups[2], err)
	}
	return field, threshold, nil
}

// FieldOf returns the left-hand field name a predicate source string
// conditions on, using the same pattern table as CompilePredicate. Used by
// stateful gate nodes (sim/nodes.AndGate) that must know whether a given
// message actually carries the field a condition talks about, before
// deciding whether to update that condition's stored state (§8 scenario 3
// — a condition's state persists across messages that don't mention its
// field). The percentage pattern has no field operand and reports false.
func FieldOf(source string) (string, bool) {
	for _, p := range predicatePatterns {
		m := p.re.FindStringSubmatch(source)
		if m == nil {
			continue
		}
		if p.name == "percentage" {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// CompilePredicate compiles predicate source text into a Predicate closure
// once, at graph-construction time (§4.5). An empty source string is not a
// valid predicate — callers treat an empty edge value as unconditional
// (§4.7) and never call CompilePredicate for it.
func CompilePredicate(source string) (Predicate, error) {
	for _, p := range predicatePatterns {
		m := p.re.FindStringSubmatch(source)
		if m == nil {
			continue
		}
		return p.compile(m)
	}
	return nil, fmt.Errorf("sim: condition did not parse: %q", source)
}
