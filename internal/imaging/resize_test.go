package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestFitHeight_DownscalesTallImage(t *testing.T) {
	data := encodeTestImage(t, 640, 960)

	out, err := FitHeight(data, 480)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	w, h := decodedSize(t, out)
	if h != 480 {
		t.Errorf("expected height 480, got %d", h)
	}
	// Aspect ratio preserved: 640 * 480/960 = 320
	if w != 320 {
		t.Errorf("expected width 320, got %d", w)
	}
}

func TestFitHeight_KeepsSmallImageDimensions(t *testing.T) {
	data := encodeTestImage(t, 320, 240)

	out, err := FitHeight(data, 480)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	w, h := decodedSize(t, out)
	if w != 320 || h != 240 {
		t.Errorf("expected 320x240 unchanged, got %dx%d", w, h)
	}
}

func TestFitHeight_InvalidData(t *testing.T) {
	if _, err := FitHeight([]byte("not an image"), 480); err == nil {
		t.Error("expected error for invalid image data")
	}
}
