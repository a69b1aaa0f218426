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

/*
Package codec re-encodes images with a quality and dimension reduction.

Supported input formats are JPEG, PNG and GIF from the standard library plus
BMP, TIFF and WebP from golang.org/x/image. The output keeps the input
format. WebP can be decoded but not encoded, so WebP input always fails.
*/
package codec

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrTransform matches every failure returned by Transform
	ErrTransform = errors.Base("transform failed")
	// ErrUnsupportedFormat is returned for formats without an encoder
	ErrUnsupportedFormat = errors.Base("unsupported image format")
)

// TransformError is the error type returned by Transform
type TransformError struct {
	Format string // Detected format, empty when decoding failed
	Err    error
}

func (e *TransformError) Error() string {
	if e.Format == "" {
		return "transform failed: " + e.Err.Error()
	}
	return "transform " + e.Format + " failed: " + e.Err.Error()
}

func (e *TransformError) Unwrap() error { return e.Err }

// Is makes every TransformError match ErrTransform
func (e *TransformError) Is(target error) bool { return target == ErrTransform }

// Options controls a single transform
type Options struct {
	// Quality applies to lossy encoders (JPEG) and is ignored by the rest
	Quality int
	// Resize halves both dimensions before encoding
	Resize bool
}

// 🔄 Transformer turns image bytes into reduced image bytes
type Transformer interface {
	Transform(ctx context.Context, data []byte, opts Options) ([]byte, error)
}

// encoder writes img in a single format
type encoder func(w io.Writer, img image.Image, opts Options) error

// 🖼️ Image is the Transformer backed by the Go image packages
type Image struct {
	encoders map[string]encoder
}

var _ Transformer = (*Image)(nil)

// 🏭 New creates an image codec with every supported encoder registered
func New() *Image {
	return &Image{
		encoders: map[string]encoder{
			"jpeg": encodeJPEG,
			"png":  encodePNG,
			"gif":  encodeGIF,
			"bmp":  encodeBMP,
			"tiff": encodeTIFF,
		},
	}
}

// Transform decodes data, optionally halves it and encodes it again in the
// same format
func (c *Image) Transform(ctx context.Context, data []byte, opts Options) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &TransformError{Err: errors.Errorf("decoding image: %w", err)}
	}

	enc, ok := c.encoders[format]
	if !ok {
		return nil, &TransformError{Format: format, Err: errors.Errorf("%w: no encoder for %s", ErrUnsupportedFormat, format)}
	}

	if opts.Resize {
		img, err = Halve(img)
		if err != nil {
			return nil, &TransformError{Format: format, Err: err}
		}
	}

	var buf bytes.Buffer
	if err := enc(&buf, img, opts); err != nil {
		return nil, &TransformError{Format: format, Err: errors.Errorf("encoding: %w", err)}
	}

	logger.Debug().
		Str("format", format).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Int("size_before", len(data)).
		Int("size_after", buf.Len()).
		Msg("image transformed")

	return buf.Bytes(), nil
}

func encodeJPEG(w io.Writer, img image.Image, opts Options) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(opts.Quality)})
}

func encodePNG(w io.Writer, img image.Image, _ Options) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

func encodeGIF(w io.Writer, img image.Image, _ Options) error {
	o := &gif.Options{NumColors: 256}
	if p, ok := img.(*image.Paletted); ok {
		o.NumColors = len(p.Palette)
	}
	return gif.Encode(w, img, o)
}

func encodeBMP(w io.Writer, img image.Image, _ Options) error {
	return bmp.Encode(w, img)
}

func encodeTIFF(w io.Writer, img image.Image, _ Options) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// jpeg.Encode treats anything below 1 as the default quality
func clampQuality(q int) int {
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	default:
		return q
	}
}
