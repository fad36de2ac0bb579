package tension

import (
	"math"

	"github.com/okvist/recast/internal/beats"
)

// Directive is a categorical pacing instruction for the next beat.
type Directive int

const (
	// DirectiveMaintain is the fallback for out-of-range positions.
	DirectiveMaintain Directive = iota
	// DirectiveInjectConflict asks for raised stakes or a new obstacle.
	DirectiveInjectConflict
	// DirectiveProvideRespite asks for reflection or small relief.
	DirectiveProvideRespite
	// DirectiveAddVariety asks for a tonal surprise when tension is flat.
	DirectiveAddVariety
	// DirectiveEscalate asks for dramatic escalation at peak targets.
	DirectiveEscalate
	// DirectiveRising asks for steady tension building.
	DirectiveRising
	// DirectiveResolve asks for calm and closure at low targets.
	DirectiveResolve
	// DirectiveBalanced asks for steady momentum.
	DirectiveBalanced
)

func (d Directive) String() string {
	switch d {
	case DirectiveMaintain:
		return "maintain pacing"
	case DirectiveInjectConflict:
		return "inject conflict"
	case DirectiveProvideRespite:
		return "provide respite"
	case DirectiveAddVariety:
		return "add variety"
	case DirectiveEscalate:
		return "escalate"
	case DirectiveRising:
		return "rising action"
	case DirectiveResolve:
		return "calm resolution"
	case DirectiveBalanced:
		return "balanced pacing"
	default:
		return "unknown"
	}
}

// Hint returns the instruction text handed to the scene generator.
func (d Directive) Hint() string {
	switch d {
	case DirectiveInjectConflict:
		return "INJECT CONFLICT: Add unexpected complication, obstacle, or threat. Raise stakes."
	case DirectiveProvideRespite:
		return "PROVIDE RESPITE: Include moment of reflection, small victory, or emotional connection."
	case DirectiveAddVariety:
		return "ADD VARIETY: Introduce surprising element or shift emotional tone."
	case DirectiveEscalate:
		return "HIGH TENSION: Escalate conflict dramatically. Make outcomes uncertain."
	case DirectiveRising:
		return "RISING ACTION: Build tension steadily. Introduce complications."
	case DirectiveResolve:
		return "CALM RESOLUTION: Provide emotional closure. Tie up loose ends."
	case DirectiveBalanced:
		return "BALANCED PACING: Maintain steady narrative momentum."
	default:
		return "Maintain current pacing."
	}
}

// beatTargets maps template beat names to ideal NTI values. Unnamed or
// extra positions fall back to defaultTarget.
var beatTargets = map[string]float64{
	"Opening Image":          0.3,
	"Theme Stated":           0.35,
	"Setup":                  0.4,
	"Catalyst":               0.7,
	"Debate":                 0.6,
	"Break into Two":         0.75,
	"B Story":                0.5,
	"Fun and Games":          0.6,
	"Midpoint":               1.5,
	"Bad Guys Close In":      1.0,
	"All Is Lost":            1.3,
	"Dark Night of the Soul": 0.8,
	"Break into Three":       1.0,
	"Finale":                 1.8,
	"Final Image":            0.2,
}

const defaultTarget = 0.5

// Deviation band and flatness thresholds. These are empirically chosen;
// consumers depend on the exact values.
const (
	deviationBand  = 0.3
	flatnessStdDev = 0.1
	recentWindow   = 3
)

// Controller owns one run's target tension curve and its rolling history
// of actual NTI values. It is not safe for concurrent use: one controller
// per run, one logical caller, positions in strictly increasing order.
type Controller struct {
	numBeats int
	target   []float64
	history  []float64
}

// NewController builds a controller for numBeats narrative positions.
// Non-positive counts fall back to the template length.
func NewController(numBeats int) *Controller {
	if numBeats <= 0 {
		numBeats = beats.Count()
	}

	target := make([]float64, numBeats)
	for i := range target {
		target[i] = defaultTarget
		if i < beats.Count() {
			if v, ok := beatTargets[beats.SaveTheCat[i].Name]; ok {
				target[i] = v
			}
		}
	}

	return &Controller{
		numBeats: numBeats,
		target:   target,
	}
}

// Directive records the previous beat's actual NTI (when non-nil) and
// returns the pacing directive for the given position. Out-of-range
// positions return DirectiveMaintain without touching history.
func (c *Controller) Directive(position int, actual *float64) Directive {
	if position < 0 || position >= c.numBeats {
		return DirectiveMaintain
	}

	if actual != nil {
		c.history = append(c.history, *actual)
	}

	target := c.target[position]

	if n := len(c.history); n > 0 {
		recent := c.history[n-1]
		if n >= recentWindow {
			recent = mean(c.history[n-recentWindow:])
		}

		switch {
		case recent < target-deviationBand:
			return DirectiveInjectConflict
		case recent > target+deviationBand:
			return DirectiveProvideRespite
		case n >= recentWindow && stdDev(c.history[n-recentWindow:]) < flatnessStdDev:
			return DirectiveAddVariety
		}
	}

	switch {
	case target > 1.2:
		return DirectiveEscalate
	case target > 0.7:
		return DirectiveRising
	case target < 0.4:
		return DirectiveResolve
	default:
		return DirectiveBalanced
	}
}

// Target returns the ideal NTI for a position, or the default for
// out-of-range positions.
func (c *Controller) Target(position int) float64 {
	if position < 0 || position >= c.numBeats {
		return defaultTarget
	}
	return c.target[position]
}

// TargetCurve returns a copy of the full target curve.
func (c *Controller) TargetCurve() []float64 {
	out := make([]float64, len(c.target))
	copy(out, c.target)
	return out
}

// History returns a copy of the recorded NTI values so far.
func (c *Controller) History() []float64 {
	out := make([]float64, len(c.history))
	copy(out, c.history)
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
