package tension

import (
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestTargetCurveDefaults(t *testing.T) {
	c := NewController(15)

	want := []float64{
		0.3, 0.35, 0.4, 0.7, 0.6, 0.75, 0.5, 0.6,
		1.5, 1.0, 1.3, 0.8, 1.0, 1.8, 0.2,
	}

	got := c.TargetCurve()
	if len(got) != len(want) {
		t.Fatalf("curve length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("target[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTargetCurvePadsExtraBeats(t *testing.T) {
	c := NewController(20)

	curve := c.TargetCurve()
	if len(curve) != 20 {
		t.Fatalf("curve length = %d, want 20", len(curve))
	}
	for i := 15; i < 20; i++ {
		if curve[i] != 0.5 {
			t.Errorf("target[%d] = %v, want 0.5", i, curve[i])
		}
	}
}

func TestDirectiveOutOfRange(t *testing.T) {
	c := NewController(5)
	c.Directive(1, fp(0.4))

	before := len(c.History())

	if got := c.Directive(5, fp(0.9)); got != DirectiveMaintain {
		t.Errorf("Directive(5) = %v, want maintain", got)
	}
	if got := c.Directive(99, fp(0.9)); got != DirectiveMaintain {
		t.Errorf("Directive(99) = %v, want maintain", got)
	}
	if got := c.Directive(-1, fp(0.9)); got != DirectiveMaintain {
		t.Errorf("Directive(-1) = %v, want maintain", got)
	}

	if len(c.History()) != before {
		t.Errorf("history grew from %d to %d on out-of-range calls", before, len(c.History()))
	}
}

func TestDirectiveInjectConflictOnSustainedLow(t *testing.T) {
	c := NewController(15)

	// Positions 9-11 have targets 1.0, 1.3, 0.8; feeding 0.2 keeps the
	// recent average far below every band.
	c.Directive(8, nil)
	if got := c.Directive(9, fp(0.2)); got != DirectiveInjectConflict {
		t.Errorf("first low reading = %v, want inject conflict", got)
	}
	if got := c.Directive(10, fp(0.2)); got != DirectiveInjectConflict {
		t.Errorf("second low reading = %v, want inject conflict", got)
	}
	if got := c.Directive(11, fp(0.2)); got != DirectiveInjectConflict {
		t.Errorf("third low reading = %v, want inject conflict", got)
	}
}

func TestDirectiveProvideRespiteOnSustainedHigh(t *testing.T) {
	c := NewController(15)

	// Position 1 target 0.35: a single 1.9 reading is far above the band.
	if got := c.Directive(1, fp(1.9)); got != DirectiveProvideRespite {
		t.Errorf("high reading = %v, want provide respite", got)
	}
}

func TestDirectiveAddVarietyOnFlatTension(t *testing.T) {
	c := NewController(15)

	// Targets for positions 1-3 are 0.35, 0.4, 0.7. Values around 0.55
	// stay inside every +-0.3 band and have near-zero variance, so the
	// third call trips the flatness rule.
	if got := c.Directive(1, fp(0.55)); got == DirectiveAddVariety {
		t.Fatalf("variety triggered with one history entry")
	}
	if got := c.Directive(2, fp(0.56)); got == DirectiveAddVariety {
		t.Fatalf("variety triggered with two history entries")
	}
	if got := c.Directive(3, fp(0.57)); got != DirectiveAddVariety {
		t.Errorf("flat tension = %v, want add variety", got)
	}
}

func TestDirectivePrecedenceBandBeforeFlatness(t *testing.T) {
	c := NewController(15)

	// Flat history well below the Midpoint target: band deviation wins
	// over the flatness rule.
	c.Directive(6, fp(0.5))
	c.Directive(7, fp(0.5))
	if got := c.Directive(8, fp(0.5)); got != DirectiveInjectConflict {
		t.Errorf("flat but low = %v, want inject conflict", got)
	}
}

func TestDirectivePositionDefaults(t *testing.T) {
	// With no history the controller falls back to position-only
	// defaults keyed off the target value.
	tests := []struct {
		position int
		want     Directive
	}{
		{0, DirectiveResolve},   // 0.3 < 0.4
		{2, DirectiveBalanced},  // 0.4
		{9, DirectiveRising},    // 1.0 > 0.7
		{8, DirectiveEscalate},  // 1.5 > 1.2
		{13, DirectiveEscalate}, // 1.8 > 1.2
		{14, DirectiveResolve},  // 0.2 < 0.4
	}

	for _, tt := range tests {
		c := NewController(15)
		if got := c.Directive(tt.position, nil); got != tt.want {
			t.Errorf("Directive(%d, nil) = %v, want %v", tt.position, got, tt.want)
		}
	}
}

func TestDirectiveSequenceTrackingTargets(t *testing.T) {
	// Feed the controller its own targets (the score of beat i arrives
	// with the request for beat i+1). The curve's own jumps exceed the
	// +-0.3 band around the Midpoint and Finale spikes, so perfect
	// tracking still draws corrective directives there.
	c := NewController(15)
	targets := c.TargetCurve()

	want := []Directive{
		DirectiveResolve,        // 0: no history, target 0.3
		DirectiveResolve,        // 1
		DirectiveBalanced,       // 2
		DirectiveInjectConflict, // 3: avg 0.35 below 0.7-0.3
		DirectiveBalanced,       // 4
		DirectiveRising,         // 5
		DirectiveAddVariety,     // 6: last three nearly flat
		DirectiveBalanced,       // 7
		DirectiveInjectConflict, // 8: avg 0.62 below 1.5-0.3
		DirectiveRising,         // 9
		DirectiveEscalate,       // 10
		DirectiveProvideRespite, // 11: avg 1.27 above 0.8+0.3
		DirectiveRising,         // 12
		DirectiveInjectConflict, // 13: avg 1.03 below 1.8-0.3
		DirectiveProvideRespite, // 14: avg 1.2 above 0.2+0.3
	}

	for i := 0; i < 15; i++ {
		var actual *float64
		if i > 0 {
			actual = fp(targets[i-1])
		}
		if got := c.Directive(i, actual); got != want[i] {
			t.Errorf("position %d: directive = %v, want %v", i, got, want[i])
		}
	}

	if got := len(c.History()); got != 14 {
		t.Errorf("history length = %d, want 14", got)
	}
}

func TestHistoryInvariant(t *testing.T) {
	c := NewController(4)

	for i := 0; i < 4; i++ {
		var actual *float64
		if i > 0 {
			actual = fp(0.5)
		}
		c.Directive(i, actual)
		if got := len(c.History()); got > 4 {
			t.Fatalf("history length %d exceeds beat count", got)
		}
	}

	// History copies must not alias internal state.
	h := c.History()
	if len(h) > 0 {
		h[0] = 99
		if c.History()[0] == 99 {
			t.Error("History() returned a live reference")
		}
	}
}

func TestNewControllerNonPositiveFallsBack(t *testing.T) {
	c := NewController(0)
	if got := len(c.TargetCurve()); got != 15 {
		t.Errorf("curve length = %d, want 15", got)
	}
}

func TestStdDev(t *testing.T) {
	// Population standard deviation.
	got := stdDev([]float64{0.6, 0.75, 0.5})
	if math.Abs(got-0.10274) > 1e-4 {
		t.Errorf("stdDev = %v, want ~0.10274", got)
	}
	if stdDev(nil) != 0 {
		t.Error("stdDev(nil) should be 0")
	}
}

func TestDirectiveHints(t *testing.T) {
	for _, d := range []Directive{
		DirectiveMaintain, DirectiveInjectConflict, DirectiveProvideRespite,
		DirectiveAddVariety, DirectiveEscalate, DirectiveRising,
		DirectiveResolve, DirectiveBalanced,
	} {
		if d.Hint() == "" {
			t.Errorf("%v has empty hint", d)
		}
		if d.String() == "unknown" {
			t.Errorf("%v has no label", d)
		}
	}
}
