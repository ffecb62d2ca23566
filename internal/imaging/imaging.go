// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging downscales uploaded pictures. The portal uses it to build
// small data-URL previews in admin forms; the content API uses it to cap
// the size of stored images. Images are never upscaled.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Target widths.
const (
	PreviewWidth = 320  // admin form preview
	StoredWidth  = 1920 // largest image kept in object storage
)

// jpegQuality is used for every re-encoded image.
const jpegQuality = 82

// MaxPixels caps width*height of any image decoded here.
const MaxPixels = 40_000_000

var (
	// ErrNotImage is returned for bytes no registered decoder understands.
	ErrNotImage = errors.New("imaging: not a decodable image")
	// ErrTooLarge is returned when the header declares more than MaxPixels.
	ErrTooLarge = errors.New("imaging: image too large")
)

// Image is a re-encoded picture.
type Image struct {
	Width       int
	Height      int
	Data        []byte
	ContentType string
}

// IsImage reports whether contentType names an image format.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// Downscale returns src resized to at most maxWidth pixels wide, keeping
// the aspect ratio and encoding as JPEG. When src is already narrow enough
// it is returned unchanged with resized=false.
func Downscale(src []byte, maxWidth int) (img *Image, resized bool, err error) {
	// Read the header first so an image bomb is refused before decoding.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, false, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, MaxPixels)
	}
	if cfg.Width <= maxWidth {
		return &Image{Width: cfg.Width, Height: cfg.Height, Data: src, ContentType: "image/" + format}, false, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	b := decoded.Bounds()
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), decoded, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, false, fmt.Errorf("imaging: encode: %w", err)
	}
	return &Image{Width: maxWidth, Height: height, Data: buf.Bytes(), ContentType: "image/jpeg"}, true, nil
}

// PreviewDataURL renders a small inline preview of an uploaded image.
// Non-image content and undecodable bytes yield "".
func PreviewDataURL(data []byte, contentType string) string {
	if !IsImage(contentType) || len(data) == 0 {
		return ""
	}
	img, _, err := Downscale(data, PreviewWidth)
	if err != nil {
		return ""
	}
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
