// Package imaging re-encodes source images into raw bytes for embedding.
// Each image is decoded once and encoded once in its original format;
// formats without an encoder (webp) and unrecognized formats fall back
// to JPEG.
package imaging

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Decode-only format support.
	_ "golang.org/x/image/webp"
)

// Reencode decodes the image at path and encodes it back to raw bytes in
// its detected format. It returns the encoded bytes and the output format
// name ("jpeg", "png", "gif", "bmp", or "tiff"). jpegQuality applies to
// JPEG output, including the unknown-format fallback.
func Reencode(path string, jpegQuality int) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	default:
		// webp and anything unrecognized: re-encode as JPEG.
		format = "jpeg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), format, nil
}
