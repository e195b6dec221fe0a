// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imagesource provides a capture source that re-delivers a still
// image at the configured frame rate.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP files are decoded. The image is scaled
// to the output size once per Configure and converted to BGRA, so each
// delivery is a plain copy. Importing the package registers it as "image";
// a source created from the registry needs Load or SetImage before
// Configure.
package imagesource

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/screencap"
	"github.com/gogpu/screencap/internal/pixconv"
	"github.com/gogpu/screencap/source"
)

// Name is the registry name of the image source.
const Name = "image"

// ErrNoImage is returned by Configure when no image was set.
var ErrNoImage = errors.New("imagesource: no image")

func init() {
	screencap.RegisterSource(Name, func() screencap.Source {
		return New(nil)
	})
}

// Source delivers a still image.
type Source struct {
	*source.Loop
	still *still
}

// New returns a source delivering img. img may be nil and set later.
func New(img image.Image) *Source {
	s := &still{img: img, scaler: draw.ApproxBiLinear}
	return &Source{Loop: source.NewLoop(Name, s), still: s}
}

// Open decodes the image file at path and returns a source delivering it.
func Open(path string) (*Source, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return New(img), nil
}

// Decode reads an image file in any registered format.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagesource: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imagesource: decode %s: %w", path, err)
	}
	screencap.Logger().Debug("imagesource: decoded",
		"path", path,
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())
	return img, nil
}

// Load decodes the image file at path and makes it the delivered image.
func (s *Source) Load(path string) error {
	img, err := Decode(path)
	if err != nil {
		return err
	}
	s.SetImage(img)
	return nil
}

// SetImage replaces the delivered image. A configured source rescales it
// immediately.
func (s *Source) SetImage(img image.Image) {
	s.still.set(img)
}

// SetScaler selects the interpolator used to fit the image to the output
// size. The default is draw.ApproxBiLinear.
func (s *Source) SetScaler(scaler draw.Scaler) {
	s.still.mu.Lock()
	defer s.still.mu.Unlock()
	if scaler != nil {
		s.still.scaler = scaler
	}
}

type still struct {
	mu     sync.Mutex
	img    image.Image
	scaler draw.Scaler
	width  int
	height int
	bgra   []byte
}

func (s *still) set(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
	if s.bgra != nil && img != nil {
		s.render()
	}
}

func (s *still) Prepare(settings screencap.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImage
	}
	s.width, s.height = settings.OutputWidth, settings.OutputHeight
	s.render()
	return nil
}

func (s *still) Fill(_ uint64, buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(buf, s.bgra)
}

// render scales the image to the output size and stores it as BGRA.
func (s *still) render() {
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	s.scaler.Scale(dst, dst.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	s.bgra = ToBGRA(dst)
}

// ToBGRA converts img to tightly packed BGRA bytes.
func ToBGRA(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, b.Dx()*b.Dy()*pixconv.BytesPerPixel)
	if b.Empty() {
		return out
	}
	src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y):]
	// The geometry comes from img itself, so Convert cannot fail.
	_ = pixconv.Convert(out, src, img.Stride, b.Dx(), b.Dy(), pixconv.Op{SwapRB: true})
	return out
}
