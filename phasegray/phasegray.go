// Package phasegray combines an N-step wrapped phase map with a Gray-code
// fringe-order map into a single absolute phase map, denoising the result
// with a median-filter spike correction.
package phasegray

import (
	"fmt"
	"math"

	"github.com/jhacsonmeza/SLutils/collab"
	"github.com/jhacsonmeza/SLutils/graycode"
	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/phaseshift"
)

const medianAperture = 5

// Unwrap estimates the wrapped phase from psPaths (N-step phase-shifting),
// the fringe order from gcPaths (Gray-code decoding), combines them into an
// absolute phase map, and removes +/-2*pi spikes at fringe-order boundaries
// using a 5x5 median-filtered reference.
//
// p is the fringe pitch (cycles across the image) and N is the phase-shift
// count passed through to phaseshift.NStepPhaseShifting.
//
// Ordering is load-bearing: the phase is shifted before rewrapping so the
// discontinuity no longer coincides with a Gray-code boundary, shifted back
// after combining with the fringe order, and only then denoised — shifting
// after denoise would let the median filter see the coincident discontinuity
// it was introduced to avoid.
func Unwrap(loader collab.Loader, blur collab.MedianBlur, psPaths, gcPaths []string, p, N int) (image2d.Image[float64], error) {
	phi, err := phaseshift.NStepPhaseShifting(loader, psPaths, N)
	if err != nil {
		return image2d.Image[float64]{}, fmt.Errorf("phasegray: %w", err)
	}

	decMap, err := graycode.DecimalMap(loader, gcPaths)
	if err != nil {
		return image2d.Image[float64]{}, fmt.Errorf("phasegray: %w", err)
	}

	shift := -math.Pi + math.Pi/float64(p)

	capital := image2d.New[float64](phi.Width, phi.Height)
	for idx := range phi.Pix {
		rewrapped := math.Atan2(math.Sin(phi.Pix[idx]+shift), math.Cos(phi.Pix[idx]+shift))
		capital.Pix[idx] = rewrapped + 2*math.Pi*float64(decMap.Pix[idx]) - shift
	}

	capitalF32 := image2d.Convert[float32](capital)
	median := blur.Blur(capitalF32, medianAperture)

	for idx := range capital.Pix {
		n := image2d.RoundHalfAwayFromZero((capital.Pix[idx] - float64(median.Pix[idx])) / (2 * math.Pi))
		capital.Pix[idx] -= 2 * math.Pi * n
	}

	return capital, nil
}
