// Package collab defines the external collaborator contracts the
// phase-unwrapping core imposes on its host: an 8-bit grayscale image
// loader, a median-blur filter, Otsu thresholding, and bitwise-AND. The
// core packages depend only on these interfaces; gocvio provides the
// concrete OpenCV-backed implementation.
package collab

import "github.com/jhacsonmeza/SLutils/image2d"

// Loader decodes an image file path into an 8-bit grayscale buffer. All
// images loaded within a single operation are expected to share identical
// dimensions; callers are responsible for that invariant, not Loader.
type Loader interface {
	LoadGray(path string) (image2d.Image[uint8], error)
}

// MedianBlur is a classical 2D median filter with edge replication and an
// odd aperture. It operates on float32: the denoise step intentionally
// downcasts before filtering.
type MedianBlur interface {
	Blur(src image2d.Image[float32], aperture int) image2d.Image[float32]
}

// Otsu produces a binary {0, 255} image via standard Otsu thresholding.
type Otsu interface {
	Threshold(src image2d.Image[uint8]) image2d.Image[uint8]
}

// BitwiseAnd performs an element-wise AND over two equally-sized images.
type BitwiseAnd interface {
	And(a, b image2d.Image[uint8]) image2d.Image[uint8]
}
