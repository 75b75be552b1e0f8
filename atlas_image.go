package msdftext

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeAtlasImage decodes an atlas image (PNG, BMP, TIFF or WebP) and
// flips it vertically, so that row 0 of the result is the bottom of the
// atlas. Atlas bounds are bottom-origin and OpenGL treats the first
// uploaded row as v = 0, so the result can be uploaded as is.
func DecodeAtlasImage(r io.Reader) (*image.NRGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("msdftext: decode atlas image: %w", err)
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	flipVertical(dst)

	logger.Debug("atlas image decoded", "format", format, "width", b.Dx(), "height", b.Dy())
	return dst, nil
}

// LoadAtlasImage reads and decodes an atlas image file.
func LoadAtlasImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeAtlasImage(f)
}

func flipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bot := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}
