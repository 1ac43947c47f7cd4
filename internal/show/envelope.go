package show

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// smootherstep: 6x^5 - 15x^4 + 10x^3
func smootherstep(x float64) float64 {
	return x * x * x * (x*(x*6-15) + 10)
}

func easeApply(kind string, x float64) float64 {
	switch kind {
	case "smooth":
		return x * x * (3 - 2*x)
	case "cubic":
		return smootherstep(x)
	default:
		return x
	}
}

// Eval returns the value of the envelope at t seconds into the clip.
// No keys gives 0 and a single key is constant.
func (e Envelope) Eval(t float64) float64 {
	n := len(e.Keys)
	if n == 0 {
		return 0
	}
	if t <= e.Keys[0].T {
		return e.Keys[0].V
	}
	if t >= e.Keys[n-1].T {
		return e.Keys[n-1].V
	}
	for i := 0; i < n-1; i++ {
		a, b := e.Keys[i], e.Keys[i+1]
		if t >= a.T && t <= b.T {
			den := b.T - a.T
			if den <= 0 {
				return b.V
			}
			u := easeApply(a.Ease, clamp01((t-a.T)/den))
			return a.V + (b.V-a.V)*u
		}
	}
	return e.Keys[n-1].V
}

// BoolEval thresholds the envelope at 0.5.
func (e Envelope) BoolEval(t float64) bool {
	return e.Eval(t) >= 0.5
}

// Range returns the smallest and largest key value.
func (e Envelope) Range() (lo, hi float64) {
	for i, k := range e.Keys {
		if i == 0 || k.V < lo {
			lo = k.V
		}
		if i == 0 || k.V > hi {
			hi = k.V
		}
	}
	return lo, hi
}

// UnmarshalYAML accepts either a bare number (a constant) or a list of
// keyframes. Keys are sorted by time.
func (e *Envelope) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: envelope: %w", node.Line, err)
		}
		e.Keys = []Keyframe{{V: v}}
		return nil
	case yaml.SequenceNode:
		var keys []Keyframe
		if err := node.Decode(&keys); err != nil {
			return err
		}
		sort.SliceStable(keys, func(i, j int) bool { return keys[i].T < keys[j].T })
		e.Keys = keys
		return nil
	default:
		return fmt.Errorf("line %d: envelope must be a number or a list of keys", node.Line)
	}
}

func (e Envelope) MarshalYAML() (interface{}, error) {
	return e.Keys, nil
}
