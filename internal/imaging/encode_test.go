package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestReencode_PNGStaysPNG(t *testing.T) {
	path := writeTestImage(t, "in.png", "png")

	data, format, err := Reencode(path, 95)
	if err != nil {
		t.Fatalf("Reencode: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %q, want png", format)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not decodable PNG: %v", err)
	}
}

func TestReencode_JPEGStaysJPEG(t *testing.T) {
	path := writeTestImage(t, "in.jpg", "jpeg")

	data, format, err := Reencode(path, 95)
	if err != nil {
		t.Fatalf("Reencode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", format)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not decodable JPEG: %v", err)
	}
}

func TestReencode_CorruptInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Reencode(path, 95); err == nil {
		t.Error("expected error for corrupt input")
	}
}

func TestReencode_MissingFile(t *testing.T) {
	if _, _, err := Reencode(filepath.Join(t.TempDir(), "nope.png"), 95); err == nil {
		t.Error("expected error for missing file")
	}
}

// --- Helpers ---

// writeTestImage writes a tiny 4x4 image in the given format and returns
// its path.
func writeTestImage(t *testing.T, name, format string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		t.Fatalf("unsupported test format %q", format)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
