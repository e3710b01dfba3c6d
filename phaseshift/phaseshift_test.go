package phaseshift

import (
	"math"
	"testing"

	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/internal/sltest"
	"github.com/jhacsonmeza/SLutils/slerr"
)

const tol = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// TestThreeStepPhaseShifting_KnownTriple checks the closed-form three-step estimator
// against a hand-verified fringe triple.
func TestThreeStepPhaseShifting_KnownTriple(t *testing.T) {
	i0 := sltest.ImageFromRows([][]uint8{{0, 255}, {128, 64}})
	i1 := sltest.ImageFromRows([][]uint8{{255, 0}, {64, 128}})
	i2 := sltest.ImageFromRows([][]uint8{{128, 128}, {255, 0}})

	loader := sltest.NewFakeLoader(map[string]image2d.Image[uint8]{
		"i0.png": i0, "i1.png": i1, "i2.png": i2,
	})

	phase, err := ThreeStepPhaseShifting(loader, []string{"i0.png", "i1.png", "i2.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := math.Atan2(math.Sqrt(3)*(0-128), 2*255-0-128)
	if got := phase.At(0, 0); !approxEqual(got, want, 1e-4) {
		t.Errorf("phase(0,0) = %v, want %v", got, want)
	}

	for y := 0; y < phase.Height; y++ {
		for x := 0; x < phase.Width; x++ {
			v := phase.At(x, y)
			if v <= -math.Pi || v > math.Pi {
				t.Errorf("phase(%d,%d)=%v out of (-pi, pi]", x, y, v)
			}
		}
	}
}

func TestThreeStepPhaseShifting_InsufficientFrames(t *testing.T) {
	loader := sltest.NewFakeLoader(nil)
	_, err := ThreeStepPhaseShifting(loader, []string{"a.png", "b.png"})
	if err != slerr.InsufficientFrames {
		t.Fatalf("expected InsufficientFrames, got %v", err)
	}
}

func TestNStepPhaseShifting_InsufficientFrames(t *testing.T) {
	loader := sltest.NewFakeLoader(nil)
	_, err := NStepPhaseShifting(loader, []string{"a.png", "b.png"}, 4)
	if err != slerr.InsufficientFrames {
		t.Fatalf("expected InsufficientFrames, got %v", err)
	}
}

// Spatially constant frames (50, 80, 110, 140) give sin sum -60 and cos sum
// 60 at every pixel, so the phase is pi/4 everywhere; this exercises the
// N-step accumulation loop across more than 3 frames.
func TestNStepPhaseShifting_Range(t *testing.T) {
	const N = 4
	images := make(map[string]image2d.Image[uint8])
	paths := make([]string, N)
	for i := 0; i < N; i++ {
		path := string(rune('a' + i))
		paths[i] = path
		val := uint8(50 + i*30)
		images[path] = sltest.ImageFromRows([][]uint8{{val, val}, {val, val}})
	}
	loader := sltest.NewFakeLoader(images)

	phase, err := NStepPhaseShifting(loader, paths, N)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range phase.Pix {
		if v <= -math.Pi || v > math.Pi {
			t.Errorf("phase out of (-pi, pi]: %v", v)
		}
	}
}

func TestNStepPhaseShifting_SizeMismatch(t *testing.T) {
	images := map[string]image2d.Image[uint8]{
		"a": sltest.ImageFromRows([][]uint8{{1, 2}, {3, 4}}),
		"b": sltest.ImageFromRows([][]uint8{{1, 2, 3}}),
		"c": sltest.ImageFromRows([][]uint8{{1, 2}, {3, 4}}),
	}
	loader := sltest.NewFakeLoader(images)
	_, err := NStepPhaseShifting(loader, []string{"a", "b", "c"}, 3)
	if err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestNStepPhaseShiftingModulation_ZeroIntensityIsNaN(t *testing.T) {
	images := map[string]image2d.Image[uint8]{
		"a": sltest.ImageFromRows([][]uint8{{0}}),
		"b": sltest.ImageFromRows([][]uint8{{0}}),
		"c": sltest.ImageFromRows([][]uint8{{0}}),
	}
	loader := sltest.NewFakeLoader(images)

	_, modulation, err := NStepPhaseShiftingModulation(loader, []string{"a", "b", "c"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(modulation.At(0, 0)) {
		t.Errorf("expected NaN modulation at zero intensity, got %v", modulation.At(0, 0))
	}
}

func TestThreeStepPhaseShiftingModulation_KnownTriple(t *testing.T) {
	i0 := sltest.ImageFromRows([][]uint8{{0, 255}, {128, 64}})
	i1 := sltest.ImageFromRows([][]uint8{{255, 0}, {64, 128}})
	i2 := sltest.ImageFromRows([][]uint8{{128, 128}, {255, 0}})
	loader := sltest.NewFakeLoader(map[string]image2d.Image[uint8]{
		"i0.png": i0, "i1.png": i1, "i2.png": i2,
	})

	_, modulation, err := ThreeStepPhaseShiftingModulation(loader, []string{"i0.png", "i1.png", "i2.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num := math.Sqrt(3) * (0 - 128)
	den := 2*255.0 - 0 - 128
	want := math.Sqrt(num*num+den*den) / (0 + 255 + 128)
	if got := modulation.At(0, 0); !approxEqual(got, want, 1e-4) {
		t.Errorf("modulation(0,0) = %v, want %v", got, want)
	}
}
