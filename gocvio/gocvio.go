// Package gocvio implements the collab contracts on top of OpenCV via
// gocv.io/x/gocv: cv::imread, cv::medianBlur, cv::threshold with
// THRESH_OTSU, and cv::bitwise_and. Keeping this translation in its own
// package means the numeric core (phaseshift, graycode, phasegray,
// multifreq, spatial) never imports cgo.
package gocvio

import (
	"fmt"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/jhacsonmeza/SLutils/backend"
	"github.com/jhacsonmeza/SLutils/collab"
	"github.com/jhacsonmeza/SLutils/image2d"
	"github.com/jhacsonmeza/SLutils/slerr"
)

// Adapter implements collab.Loader, collab.MedianBlur, collab.Otsu and
// collab.BitwiseAnd. It is stateless and safe for concurrent use: every
// call opens and releases its own gocv.Mat handles.
type Adapter struct{}

func init() {
	a := Adapter{}
	backend.Register("opencv", backend.Bundle{
		Loader:     a,
		MedianBlur: a,
		Otsu:       a,
		BitwiseAnd: a,
	})
}

var (
	_ collab.Loader     = Adapter{}
	_ collab.MedianBlur = Adapter{}
	_ collab.Otsu       = Adapter{}
	_ collab.BitwiseAnd = Adapter{}
)

// LoadGray reads path as 8-bit grayscale.
func (Adapter) LoadGray(path string) (image2d.Image[uint8], error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if mat.Empty() {
		return image2d.Image[uint8]{}, errors.Wrapf(slerr.IOError, "load %s", path)
	}

	return matToImage8(mat)
}

// Blur runs an aperture x aperture median filter with edge replication.
func (Adapter) Blur(src image2d.Image[float32], aperture int) image2d.Image[float32] {
	in, err := float32ImageToMat(src)
	if err != nil {
		panic(err)
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.MedianBlur(in, &out, aperture)

	result, err := matToFloat32Image(out)
	if err != nil {
		panic(err)
	}
	return result
}

// Threshold applies Otsu binary thresholding, producing values in {0, 255}.
func (Adapter) Threshold(src image2d.Image[uint8]) image2d.Image[uint8] {
	in, err := image8ToMat(src)
	if err != nil {
		panic(err)
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.Threshold(in, &out, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	result, err := matToImage8(out)
	if err != nil {
		panic(err)
	}
	return result
}

// And performs an element-wise bitwise AND over two equally-sized images.
func (Adapter) And(a, b image2d.Image[uint8]) image2d.Image[uint8] {
	if !image2d.SameSize(a, b) {
		panic(fmt.Sprintf("gocvio: size mismatch %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height))
	}
	ma, err := image8ToMat(a)
	if err != nil {
		panic(err)
	}
	defer ma.Close()
	mb, err := image8ToMat(b)
	if err != nil {
		panic(err)
	}
	defer mb.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.BitwiseAnd(ma, mb, &out)

	result, err := matToImage8(out)
	if err != nil {
		panic(err)
	}
	return result
}

// Save writes img to path as a grayscale PNG/JPEG/etc. (format inferred from
// the extension by OpenCV's imwrite). This is not part of the collab
// contracts: it exists only for cmd/slunwrap's save-to-disk step.
func (Adapter) Save(path string, img image2d.Image[uint8]) error {
	mat, err := image8ToMat(img)
	if err != nil {
		return err
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("gocvio: failed to write %s", path)
	}
	return nil
}

func matToImage8(mat gocv.Mat) (image2d.Image[uint8], error) {
	w, h := mat.Cols(), mat.Rows()
	out := image2d.New[uint8](w, h)
	data, err := mat.DataPtrUint8()
	if err != nil {
		return image2d.Image[uint8]{}, errors.Wrap(err, "gocvio: read mat data")
	}
	copy(out.Pix, data[:w*h])
	return out, nil
}

func image8ToMat(img image2d.Image[uint8]) (gocv.Mat, error) {
	mat, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8U, img.Pix)
	if err != nil {
		return gocv.Mat{}, errors.Wrap(err, "gocvio: build mat")
	}
	return mat, nil
}

func float32ImageToMat(img image2d.Image[float32]) (gocv.Mat, error) {
	mat := gocv.NewMatWithSize(img.Height, img.Width, gocv.MatTypeCV32F)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			mat.SetFloatAt(y, x, img.At(x, y))
		}
	}
	return mat, nil
}

func matToFloat32Image(mat gocv.Mat) (image2d.Image[float32], error) {
	w, h := mat.Cols(), mat.Rows()
	out := image2d.New[float32](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, mat.GetFloatAt(y, x))
		}
	}
	return out, nil
}
