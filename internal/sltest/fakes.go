// Package sltest provides in-memory fakes for the collab contracts so the
// numeric core can be tested without OpenCV or real image files.
package sltest

import (
	"fmt"
	"sort"

	"github.com/jhacsonmeza/SLutils/image2d"
)

// FakeLoader resolves paths from an in-memory map instead of the filesystem.
type FakeLoader struct {
	Images map[string]image2d.Image[uint8]
}

// NewFakeLoader builds a FakeLoader over the given path->image map.
func NewFakeLoader(images map[string]image2d.Image[uint8]) *FakeLoader {
	return &FakeLoader{Images: images}
}

// LoadGray implements collab.Loader.
func (f *FakeLoader) LoadGray(path string) (image2d.Image[uint8], error) {
	img, ok := f.Images[path]
	if !ok {
		return image2d.Image[uint8]{}, fmt.Errorf("sltest: no fake image registered for %q", path)
	}
	return img, nil
}

// ImageFromRows builds an Image[uint8] from row-major literal rows, all of
// equal length.
func ImageFromRows(rows [][]uint8) image2d.Image[uint8] {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	out := image2d.New[uint8](width, height)
	for y, row := range rows {
		for x, v := range row {
			out.Set(x, y, v)
		}
	}
	return out
}

// NaiveMedianBlur is a reference median filter with edge-replicating
// borders, used only in tests: the production path uses gocvio.Adapter.
type NaiveMedianBlur struct{}

// Blur implements collab.MedianBlur.
func (NaiveMedianBlur) Blur(src image2d.Image[float32], aperture int) image2d.Image[float32] {
	half := aperture / 2
	out := image2d.New[float32](src.Width, src.Height)
	window := make([]float32, 0, aperture*aperture)

	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			window = window[:0]
			for dy := -half; dy <= half; dy++ {
				sy := clamp(y+dy, 0, src.Height-1)
				for dx := -half; dx <= half; dx++ {
					sx := clamp(x+dx, 0, src.Width-1)
					window = append(window, src.At(sx, sy))
				}
			}
			sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
			out.Set(x, y, window[len(window)/2])
		}
	}
	return out
}

// NaiveOtsu implements collab.Otsu with the standard histogram-variance
// Otsu threshold search, used only in tests.
type NaiveOtsu struct{}

// Threshold implements collab.Otsu.
func (NaiveOtsu) Threshold(src image2d.Image[uint8]) image2d.Image[uint8] {
	var hist [256]int
	for _, v := range src.Pix {
		hist[v]++
	}
	total := len(src.Pix)

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}

	var sumB, wB float64
	var bestVar float64
	bestThresh := 0

	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			bestThresh = t
		}
	}

	out := image2d.New[uint8](src.Width, src.Height)
	for idx, v := range src.Pix {
		if int(v) > bestThresh {
			out.Pix[idx] = 255
		}
	}
	return out
}

// NaiveBitwiseAnd implements collab.BitwiseAnd directly over Go slices.
type NaiveBitwiseAnd struct{}

// And implements collab.BitwiseAnd.
func (NaiveBitwiseAnd) And(a, b image2d.Image[uint8]) image2d.Image[uint8] {
	out := image2d.New[uint8](a.Width, a.Height)
	for idx := range a.Pix {
		out.Pix[idx] = a.Pix[idx] & b.Pix[idx]
	}
	return out
}
