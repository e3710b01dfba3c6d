// Package slerr provides the sentinel errors shared across the phase-unwrapping core.
package slerr

import "errors"

var (
	// InsufficientFrames is returned by PhaseShift operations when fewer images
	// are supplied than the method requires.
	InsufficientFrames = errors.New("phase shift: insufficient frames")

	// OddImageCount is returned by GrayCode operations when an odd number of
	// pattern/inverted-pattern images is supplied.
	OddImageCount = errors.New("graycode: odd image count")

	// FrameCountMismatch is returned by MultiFreqUnwrap when the number of
	// image paths does not equal the sum of the per-frequency shift counts.
	FrameCountMismatch = errors.New("multifreq: frame count mismatch")

	// SizeMismatch is returned by SpatialUnwrap and SeedPoint when input
	// images disagree in width or height.
	SizeMismatch = errors.New("spatial: size mismatch")

	// SeedOutsideMask is returned by SpatialUnwrap when the seed point is out
	// of bounds or falls outside the valid mask region.
	SeedOutsideMask = errors.New("spatial: seed outside mask")

	// EmptyIntersection is returned by SeedPoint when the two centerline
	// binarizations do not intersect.
	EmptyIntersection = errors.New("spatial: empty centerline intersection")

	// IOError wraps loader failures; callers should use errors.Is to match
	// the underlying cause after unwrapping.
	IOError = errors.New("io: loader failed")
)
