// Package graycode builds a binary Gray-code word stack from paired
// pattern/inverted-pattern images and decodes it to an integer fringe-order
// map. Adjacent Gray codes differ by exactly one bit, which makes the
// per-pixel decoding robust to single-bit threshold errors at fringe
// boundaries.
package graycode

import (
	"fmt"

	"github.com/jhacsonmeza/SLutils/collab"
	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/slerr"
)

// CodeWord binarizes n = len(paths)/2 pattern/inverted-pattern pairs into a
// CodeWordStack: bit k at (x,y) is 1 if pattern(x,y) > inverted(x,y). Pair k
// is stack axis 0, k=0 is the most-significant Gray bit. Returns
// slerr.OddImageCount if len(paths) is odd.
func CodeWord(loader collab.Loader, paths []string) (image2d.CodeWordStack, error) {
	if len(paths)%2 != 0 {
		return nil, slerr.OddImageCount
	}
	n := len(paths) / 2

	stack := make(image2d.CodeWordStack, n)
	var width, height int
	for k := 0; k < n; k++ {
		patternPath, invertedPath := paths[2*k], paths[2*k+1]

		pattern, err := loader.LoadGray(patternPath)
		if err != nil {
			return nil, fmt.Errorf("graycode: load %q: %w", patternPath, err)
		}
		inverted, err := loader.LoadGray(invertedPath)
		if err != nil {
			return nil, fmt.Errorf("graycode: load %q: %w", invertedPath, err)
		}
		if k == 0 {
			width, height = pattern.Width, pattern.Height
		}
		if pattern.Width != width || pattern.Height != height || inverted.Width != width || inverted.Height != height {
			return nil, fmt.Errorf("graycode: %w: pair %d", slerr.SizeMismatch, k)
		}

		bit := image2d.New[uint8](width, height)
		for idx := range bit.Pix {
			if pattern.Pix[idx] > inverted.Pix[idx] {
				bit.Pix[idx] = 1
			}
		}
		stack[k] = bit
	}

	return stack, nil
}

// Gray2Dec decodes a CodeWordStack to its fringe order via the standard
// Gray-to-binary conversion: the binary MSB equals the Gray MSB, and each
// subsequent binary bit is the previous binary bit XOR the current Gray
// bit. The decimal value is sum_k(binary_k * 2^(n-1-k)).
func Gray2Dec(stack image2d.CodeWordStack) image2d.Image[int32] {
	n := stack.N()
	if n == 0 {
		return image2d.Image[int32]{}
	}
	width, height := stack[0].Width, stack[0].Height

	dec := image2d.New[int32](width, height)
	bin := image2d.New[uint8](width, height)

	for idx := range dec.Pix {
		grayBit := stack[0].Pix[idx]
		bin.Pix[idx] = grayBit
		if grayBit != 0 {
			dec.Pix[idx] = int32(1) << uint(n-1)
		}
	}

	for k := 1; k < n; k++ {
		plane := stack[k].Pix
		for idx := range dec.Pix {
			bin.Pix[idx] ^= plane[idx]
			if bin.Pix[idx] != 0 {
				dec.Pix[idx] += int32(1) << uint(n-1-k)
			}
		}
	}

	return dec
}

// DecimalMap streams through the n pairs directly, maintaining a running
// binary buffer and accumulated decimal value without materializing the
// intermediate (n, H, W) CodeWordStack. It is bit-identical to
// Gray2Dec(CodeWord(loader, paths)).
func DecimalMap(loader collab.Loader, paths []string) (image2d.Image[int32], error) {
	if len(paths)%2 != 0 {
		return image2d.Image[int32]{}, slerr.OddImageCount
	}
	n := len(paths) / 2

	var width, height int
	var dec image2d.Image[int32]
	var bin image2d.Image[uint8]

	for k := 0; k < n; k++ {
		patternPath, invertedPath := paths[2*k], paths[2*k+1]

		pattern, err := loader.LoadGray(patternPath)
		if err != nil {
			return image2d.Image[int32]{}, fmt.Errorf("graycode: load %q: %w", patternPath, err)
		}
		inverted, err := loader.LoadGray(invertedPath)
		if err != nil {
			return image2d.Image[int32]{}, fmt.Errorf("graycode: load %q: %w", invertedPath, err)
		}
		if k == 0 {
			width, height = pattern.Width, pattern.Height
			dec = image2d.New[int32](width, height)
			bin = image2d.New[uint8](width, height)
		}
		if pattern.Width != width || pattern.Height != height || inverted.Width != width || inverted.Height != height {
			return image2d.Image[int32]{}, fmt.Errorf("graycode: %w: pair %d", slerr.SizeMismatch, k)
		}

		for idx := range dec.Pix {
			var grayBit uint8
			if pattern.Pix[idx] > inverted.Pix[idx] {
				grayBit = 1
			}

			if k == 0 {
				bin.Pix[idx] = grayBit
				if grayBit != 0 {
					dec.Pix[idx] = int32(1) << uint(n-1)
				}
				continue
			}

			bin.Pix[idx] ^= grayBit
			if bin.Pix[idx] != 0 {
				dec.Pix[idx] += int32(1) << uint(n-1-k)
			}
		}
	}

	return dec, nil
}

// Decode returns the fringe-order values at all mask-positive pixels,
// flattened in row-major order and cast to float32.
func Decode(stack image2d.CodeWordStack, mask image2d.Image[uint8]) []float32 {
	dec := Gray2Dec(stack)

	nonZero := 0
	for _, v := range mask.Pix {
		if v != 0 {
			nonZero++
		}
	}

	out := make([]float32, 0, nonZero)
	for idx, m := range mask.Pix {
		if m != 0 {
			out = append(out, float32(dec.Pix[idx]))
		}
	}
	return out
}
