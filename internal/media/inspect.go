package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrNotImage is returned when uploaded bytes do not decode as a supported image.
var ErrNotImage = errors.New("not a valid image")

// MaxPixels caps width*height of an accepted image. Decoding allocates per pixel,
// so the dimensions are checked from the header before any pixel data is read.
const MaxPixels = 40_000_000

// blurHashSize bounds the thumbnail the BlurHash is computed from.
const blurHashSize = 64

// extensions maps decoder format names to stored file extensions.
var extensions = map[string]string{
	"gif":  "gif",
	"jpeg": "jpg",
	"png":  "png",
	"webp": "webp",
}

// Info describes a decoded image.
type Info struct {
	Ext      string
	Width    int
	Height   int
	BlurHash string
}

// Inspect decodes data fully and reports its format and BlurHash.
// A BlurHash failure leaves BlurHash empty; it never rejects a decodable image.
func Inspect(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, ErrNotImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	ext, ok := extensions[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrNotImage, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrNotImage, cfg.Width, cfg.Height, MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	bounds := img.Bounds()
	info := &Info{Ext: ext, Width: bounds.Dx(), Height: bounds.Dy()}

	// 4 horizontal, 3 vertical components
	if hash, err := blurhash.Encode(4, 3, thumbnail(img)); err == nil {
		info.BlurHash = hash
	}
	return info, nil
}

// thumbnail scales img down with nearest-neighbor sampling so it fits blurHashSize.
func thumbnail(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth, srcHeight := bounds.Dx(), bounds.Dy()
	if srcWidth <= blurHashSize && srcHeight <= blurHashSize {
		return img
	}

	dstWidth, dstHeight := blurHashSize, blurHashSize
	if srcWidth > srcHeight {
		dstHeight = max(srcHeight*blurHashSize/srcWidth, 1)
	} else {
		dstWidth = max(srcWidth*blurHashSize/srcHeight, 1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)
	for y := 0; y < dstHeight; y++ {
		for x := 0; x < dstWidth; x++ {
			srcX := int(float64(x) * xRatio)
			srcY := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}
	return dst
}
