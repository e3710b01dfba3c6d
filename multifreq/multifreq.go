// Package multifreq unwraps phase via two- or three-frequency temporal
// unwrapping: synthesized equivalent wavelengths that are longer than any
// of the captured fringe periods are (by construction) discontinuity-free
// across the field of view, and each shorter wavelength is unwrapped
// relative to the next-longer one by integer fringe-count rounding.
package multifreq

import (
	"fmt"
	"math"

	"github.com/jhacsonmeza/SLutils/collab"
	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/phaseshift"
	"github.com/jhacsonmeza/SLutils/slerr"
)

const medianAperture = 5

// EquivalentPhase computes the per-pixel equivalent phase of two wrapped
// phase maps: eq = mod(phi1-phi2, 2*pi) in [0, 2*pi). Uses IEEE
// remainder-to-nearest plus a "+2*pi if negative" correction to emulate
// Euclidean modulo.
func EquivalentPhase(phi1, phi2 image2d.Image[float64]) image2d.Image[float64] {
	out := image2d.New[float64](phi1.Width, phi1.Height)
	for idx := range phi1.Pix {
		diff := phi1.Pix[idx] - phi2.Pix[idx]
		mod := math.Remainder(diff, 2*math.Pi)
		if mod < 0 {
			mod += 2 * math.Pi
		}
		out.Pix[idx] = mod
	}
	return out
}

// BackwardUnwrap resolves the fringe order of lo against the already
// (more) absolute hi, using their equivalent wavelengths tHi and tLo:
// k = round((tHi/tLo*hi - lo) / (2*pi)); lo += 2*pi*k. lo is updated
// in place, matching an in/out parameter convention over a by-reference Mat.
func BackwardUnwrap(hi, lo image2d.Image[float64], tHi, tLo float64) {
	ratio := tHi / tLo
	for idx := range lo.Pix {
		k := image2d.RoundHalfAwayFromZero((ratio*hi.Pix[idx] - lo.Pix[idx]) / (2 * math.Pi))
		lo.Pix[idx] += 2 * math.Pi * k
	}
}

func denoiseSpikes(phi image2d.Image[float64], blur collab.MedianBlur) {
	median := blur.Blur(image2d.Convert[float32](phi), medianAperture)
	for idx := range phi.Pix {
		n := image2d.RoundHalfAwayFromZero((phi.Pix[idx] - float64(median.Pix[idx])) / (2 * math.Pi))
		phi.Pix[idx] -= 2 * math.Pi * n
	}
}

func wrappedPhases(loader collab.Loader, paths []string, N []int) ([]image2d.Image[float64], error) {
	phases := make([]image2d.Image[float64], len(N))
	offset := 0
	for i, n := range N {
		phi, err := phaseshift.NStepPhaseShifting(loader, paths[offset:offset+n], n)
		if err != nil {
			return nil, fmt.Errorf("multifreq: frequency %d: %w", i+1, err)
		}
		phases[i] = phi
		offset += n
	}
	return phases, nil
}

// TwoFreq unwraps a two-frequency fringe sequence: p and N each hold the
// fringe pitch and phase-shift count for the two frequencies, in order
// 1 (shorter wavelength) then 2 (longer). Returns slerr.FrameCountMismatch
// if len(paths) != N[0]+N[1].
func TwoFreq(loader collab.Loader, blur collab.MedianBlur, paths []string, p, N [2]int) (image2d.Image[float64], error) {
	if len(paths) != N[0]+N[1] {
		return image2d.Image[float64]{}, fmt.Errorf("multifreq: %w", slerr.FrameCountMismatch)
	}

	t1, t2 := float64(p[0]), float64(p[1])
	t12 := t1 * t2 / math.Abs(t1-t2)

	phases, err := wrappedPhases(loader, paths, N[:])
	if err != nil {
		return image2d.Image[float64]{}, err
	}
	phi1, phi2 := phases[0], phases[1]

	phi12 := EquivalentPhase(phi1, phi2)
	denoiseSpikes(phi12, blur)

	BackwardUnwrap(phi12, phi2, t12, t2)
	BackwardUnwrap(phi2, phi1, t2, t1)

	return phi1, nil
}

// ThreeFreq unwraps a three-frequency fringe sequence: p and N each hold
// the fringe pitch and phase-shift count for the three frequencies, in
// order 1 (shortest) through 3 (longest). Returns slerr.FrameCountMismatch
// if len(paths) != N[0]+N[1]+N[2].
func ThreeFreq(loader collab.Loader, blur collab.MedianBlur, paths []string, p, N [3]int) (image2d.Image[float64], error) {
	if len(paths) != N[0]+N[1]+N[2] {
		return image2d.Image[float64]{}, fmt.Errorf("multifreq: %w", slerr.FrameCountMismatch)
	}

	t1, t2, t3 := float64(p[0]), float64(p[1]), float64(p[2])
	t12 := t1 * t2 / math.Abs(t1-t2)
	t23 := t2 * t3 / math.Abs(t2-t3)
	t123 := t12 * t3 / math.Abs(t12-t3)

	phases, err := wrappedPhases(loader, paths, N[:])
	if err != nil {
		return image2d.Image[float64]{}, err
	}
	phi1, phi2, phi3 := phases[0], phases[1], phases[2]

	phi12 := EquivalentPhase(phi1, phi2)
	phi23 := EquivalentPhase(phi2, phi3)
	phi123 := EquivalentPhase(phi12, phi3)

	denoiseSpikes(phi123, blur)

	BackwardUnwrap(phi123, phi23, t123, t23)
	BackwardUnwrap(phi23, phi12, t23, t12)
	BackwardUnwrap(phi12, phi3, t12, t3)
	BackwardUnwrap(phi3, phi2, t3, t2)
	BackwardUnwrap(phi2, phi1, t2, t1)

	return phi1, nil
}
