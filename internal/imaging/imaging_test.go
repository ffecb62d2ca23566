package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDownscaleLargeImage(t *testing.T) {
	img, resized, err := Downscale(pngOf(t, 800, 400), 200)
	if err != nil {
		t.Fatalf("Downscale: %v", err)
	}
	if !resized {
		t.Fatal("expected resize")
	}
	if img.Width != 200 || img.Height != 100 {
		t.Errorf("size = %dx%d, want 200x100", img.Width, img.Height)
	}
	if img.ContentType != "image/jpeg" {
		t.Errorf("content type = %q", img.ContentType)
	}
}

func TestDownscaleNeverUpscales(t *testing.T) {
	src := pngOf(t, 100, 50)
	img, resized, err := Downscale(src, 320)
	if err != nil {
		t.Fatalf("Downscale: %v", err)
	}
	if resized {
		t.Error("small image should not be resized")
	}
	if !bytes.Equal(img.Data, src) || img.ContentType != "image/png" {
		t.Error("small image should be returned unchanged")
	}
}

func TestDownscaleRejectsGarbage(t *testing.T) {
	_, _, err := Downscale([]byte("not an image"), 100)
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("err = %v, want ErrNotImage", err)
	}
}

func TestPreviewDataURL(t *testing.T) {
	got := PreviewDataURL(pngOf(t, 640, 320), "image/png")
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Errorf("preview = %.40q", got)
	}
	if PreviewDataURL([]byte("mp4"), "video/mp4") != "" {
		t.Error("video should have no preview")
	}
	if PreviewDataURL([]byte("junk"), "image/png") != "" {
		t.Error("undecodable image should have no preview")
	}
}

// inflated returns a 1x1 PNG whose header declares w x h pixels.
func inflated(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := pngOf(t, 1, 1)
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestDownscaleRefusesHugeDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
		want error
	}{
		{"bomb", 50000, 50000, ErrTooLarge},
		{"wide strip", MaxPixels + 1, 1, ErrTooLarge},
		{"under limit", 4000, 1, ErrNotImage}, // header passes, pixel data is missing
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Downscale(inflated(t, tt.w, tt.h), StoredWidth)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if PreviewDataURL(inflated(t, 50000, 50000), "image/png") != "" {
		t.Error("oversized image should have no preview")
	}
}
