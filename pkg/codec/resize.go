// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"image"
	"image/color"
	"math"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/image/draw"
)

// ErrTooSmall is returned when halving would leave an empty image
var ErrTooSmall = errors.Base("image too small to resize")

// Lanczos3 is a three-lobe Lanczos resampling kernel
var Lanczos3 = &draw.Kernel{
	Support: 3,
	At: func(t float64) float64 {
		if t == 0 {
			return 1
		}
		if t >= 3 {
			return 0
		}
		x := math.Pi * t
		return 3 * math.Sin(x) * math.Sin(x/3) / (x * x)
	},
}

// HalfSize returns floor(w/2) by floor(h/2)
func HalfSize(b image.Rectangle) (int, int) {
	return b.Dx() / 2, b.Dy() / 2
}

// 📐 Halve scales img down to half of each dimension with Lanczos3
func Halve(img image.Image) (image.Image, error) {
	w, h := HalfSize(img.Bounds())
	if w == 0 || h == 0 {
		return nil, errors.Errorf("%w: %dx%d halves to %dx%d", ErrTooSmall, img.Bounds().Dx(), img.Bounds().Dy(), w, h)
	}

	rect := image.Rect(0, 0, w, h)
	var dst draw.Image
	switch src := img.(type) {
	case *image.Gray:
		dst = image.NewGray(rect)
	case *image.Gray16:
		dst = image.NewGray16(rect)
	case *image.Paletted:
		// resample in full colour; the GIF encoder quantizes again
		dst = image.NewNRGBA(rect)
	default:
		if opaque(src) {
			dst = image.NewRGBA(rect)
		} else {
			dst = image.NewNRGBA(rect)
		}
	}

	Lanczos3.Scale(dst, rect, img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return img.ColorModel() == color.YCbCrModel
}
