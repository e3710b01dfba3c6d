package phasegray

import (
	"math"
	"testing"

	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/internal/sltest"
	"github.com/jhacsonmeza/SLutils/phaseshift"
)

// TestUnwrap_ConstantPhaseWithFringeOrders checks that a constant wrapped phase of zero combined with
// fringe orders [0,1,2,3] (p=2, N=4) unwraps to exactly
// [0, 2*pi, 4*pi, 6*pi].
func TestUnwrap_ConstantPhaseWithFringeOrders(t *testing.T) {
	const p, N = 2, 4

	// delta_i for N=4 is (pi/2, pi, 3pi/2, 2pi), so sumSin = I0-I2 and
	// sumCos = I3-I1. Setting I0=I2 and I3>I1 forces phase = 0 everywhere.
	images := map[string]image2d.Image[uint8]{
		"ps0": sltest.ImageFromRows([][]uint8{{10, 10, 10, 10}}),
		"ps1": sltest.ImageFromRows([][]uint8{{0, 0, 0, 0}}),
		"ps2": sltest.ImageFromRows([][]uint8{{10, 10, 10, 10}}),
		"ps3": sltest.ImageFromRows([][]uint8{{20, 20, 20, 20}}),
	}
	// k = [0,1,2,3] encoded as 2-bit Gray code pairs (n=2):
	// k=0 -> gray 00, k=1 -> gray 01, k=2 -> gray 11, k=3 -> gray 10
	images["gc_p0"] = sltest.ImageFromRows([][]uint8{{10, 10, 200, 200}}) // MSB pattern
	images["gc_i0"] = sltest.ImageFromRows([][]uint8{{200, 200, 10, 10}}) // MSB inverted
	images["gc_p1"] = sltest.ImageFromRows([][]uint8{{10, 200, 200, 10}}) // LSB pattern
	images["gc_i1"] = sltest.ImageFromRows([][]uint8{{200, 10, 10, 200}}) // LSB inverted

	loader := sltest.NewFakeLoader(images)
	blur := sltest.NaiveMedianBlur{}

	psPaths := []string{"ps0", "ps1", "ps2", "ps3"}
	gcPaths := []string{"gc_p0", "gc_i0", "gc_p1", "gc_i1"}

	phi, err := phaseshift.NStepPhaseShifting(loader, psPaths, N)
	if err != nil {
		t.Fatalf("sanity phase check failed: %v", err)
	}
	for _, v := range phi.Pix {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("test fixture invalid: expected wrapped phase 0, got %v", v)
		}
	}

	capital, err := Unwrap(loader, blur, psPaths, gcPaths, p, N)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}

	want := []float64{0, 2 * math.Pi, 4 * math.Pi, 6 * math.Pi}
	for x, w := range want {
		if got := capital.At(x, 0); math.Abs(got-w) > 1e-4 {
			t.Errorf("Phi[%d] = %v, want %v", x, got, w)
		}
	}
}
