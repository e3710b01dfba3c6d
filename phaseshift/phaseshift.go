// Package phaseshift estimates a wrapped phase map (and optional data
// modulation) from a sequence of captured fringe-pattern images, using the
// generalized N-step and closed-form three-step phase-shifting estimators.
package phaseshift

import (
	"fmt"
	"math"

	"github.com/jhacsonmeza/SLutils/collab"
	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/slerr"
)

const minFrames = 3

// NStepPhaseShifting estimates the wrapped phase from L fringe images using
// the generalized N-step estimator, delta_i = 2*pi*(i+1)/N for i in [0, L).
// N is typically equal to L but may exceed it. Returns slerr.InsufficientFrames
// if fewer than 3 paths are supplied.
func NStepPhaseShifting(loader collab.Loader, paths []string, N int) (image2d.Image[float64], error) {
	phase, _, err := nStep(loader, paths, N, false)
	return phase, err
}

// NStepPhaseShiftingModulation is NStepPhaseShifting plus the per-pixel data
// modulation gamma = sqrt(S^2+C^2) / sum(I). Where sum(I) is exactly zero,
// gamma is emitted as NaN rather than guarded away, since a well-posed
// fringe sequence never sums to zero intensity.
func NStepPhaseShiftingModulation(loader collab.Loader, paths []string, N int) (phase, modulation image2d.Image[float64], err error) {
	return nStep(loader, paths, N, true)
}

func nStep(loader collab.Loader, paths []string, N int, withModulation bool) (image2d.Image[float64], image2d.Image[float64], error) {
	L := len(paths)
	if L < minFrames {
		return image2d.Image[float64]{}, image2d.Image[float64]{}, slerr.InsufficientFrames
	}

	var width, height int
	var sumSin, sumCos, sumI image2d.Image[float64]

	for i, path := range paths {
		raw, err := loader.LoadGray(path)
		if err != nil {
			return image2d.Image[float64]{}, image2d.Image[float64]{}, fmt.Errorf("phaseshift: load %q: %w", path, err)
		}
		if i == 0 {
			width, height = raw.Width, raw.Height
			sumSin = image2d.New[float64](width, height)
			sumCos = image2d.New[float64](width, height)
			if withModulation {
				sumI = image2d.New[float64](width, height)
			}
		} else if raw.Width != width || raw.Height != height {
			return image2d.Image[float64]{}, image2d.Image[float64]{}, fmt.Errorf("phaseshift: %w: %q", slerr.SizeMismatch, path)
		}

		delta := 2 * math.Pi * float64(i+1) / float64(N)
		sinD, cosD := math.Sin(delta), math.Cos(delta)
		for idx, v := range raw.Pix {
			fv := float64(v)
			sumSin.Pix[idx] += fv * sinD
			sumCos.Pix[idx] += fv * cosD
			if withModulation {
				sumI.Pix[idx] += fv
			}
		}
	}

	phase := image2d.New[float64](width, height)
	for idx := range phase.Pix {
		phase.Pix[idx] = -math.Atan2(sumSin.Pix[idx], sumCos.Pix[idx])
	}

	if !withModulation {
		return phase, image2d.Image[float64]{}, nil
	}

	modulation := image2d.New[float64](width, height)
	for idx := range modulation.Pix {
		modulation.Pix[idx] = math.Sqrt(sumSin.Pix[idx]*sumSin.Pix[idx]+sumCos.Pix[idx]*sumCos.Pix[idx]) / sumI.Pix[idx]
	}
	return phase, modulation, nil
}

// ThreeStepPhaseShifting computes phi = atan2(sqrt(3)*(I0-I2), 2*I1-I0-I2)
// from exactly three fringe images. Note the sign convention differs
// deliberately from NStepPhaseShifting: this is the closed-form three-step
// estimator, not a degenerate case of the general sum.
func ThreeStepPhaseShifting(loader collab.Loader, paths []string) (image2d.Image[float64], error) {
	phase, _, err := threeStep(loader, paths, false)
	return phase, err
}

// ThreeStepPhaseShiftingModulation is ThreeStepPhaseShifting plus modulation
// = sqrt(num^2+den^2) / (I0+I1+I2), num = sqrt(3)*(I0-I2), den = 2*I1-I0-I2.
func ThreeStepPhaseShiftingModulation(loader collab.Loader, paths []string) (phase, modulation image2d.Image[float64], err error) {
	return threeStep(loader, paths, true)
}

func threeStep(loader collab.Loader, paths []string, withModulation bool) (image2d.Image[float64], image2d.Image[float64], error) {
	if len(paths) != minFrames {
		return image2d.Image[float64]{}, image2d.Image[float64]{}, slerr.InsufficientFrames
	}

	imgs := make([]image2d.Image[uint8], minFrames)
	var width, height int
	for i, path := range paths {
		raw, err := loader.LoadGray(path)
		if err != nil {
			return image2d.Image[float64]{}, image2d.Image[float64]{}, fmt.Errorf("phaseshift: load %q: %w", path, err)
		}
		if i == 0 {
			width, height = raw.Width, raw.Height
		} else if raw.Width != width || raw.Height != height {
			return image2d.Image[float64]{}, image2d.Image[float64]{}, fmt.Errorf("phaseshift: %w: %q", slerr.SizeMismatch, path)
		}
		imgs[i] = raw
	}

	const sqrt3 = 1.7320508075688772
	phase := image2d.New[float64](width, height)
	var modulation image2d.Image[float64]
	if withModulation {
		modulation = image2d.New[float64](width, height)
	}

	for idx := 0; idx < width*height; idx++ {
		i0 := float64(imgs[0].Pix[idx])
		i1 := float64(imgs[1].Pix[idx])
		i2 := float64(imgs[2].Pix[idx])

		num := sqrt3 * (i0 - i2)
		den := 2*i1 - i0 - i2
		phase.Pix[idx] = math.Atan2(num, den)

		if withModulation {
			modulation.Pix[idx] = math.Sqrt(num*num+den*den) / (i0 + i1 + i2)
		}
	}

	return phase, modulation, nil
}
