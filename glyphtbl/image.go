package glyphtbl

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Glyph grid of a source image
const (
	GridCols  = 16
	GridRows  = 6
	GridCells = GridCols * GridRows

	// widest cell that fits a 2 byte row
	MaxCellWidth = 16

	DefaultThreshold = 128
)

var ErrImageGrid = errors.New("image does not divide into the glyph grid")

// Controls 1-bit conversion of the source image
type ImageOptions struct {
	// Gray level separating ink from background
	Threshold uint8
	// Treat pixels at or above Threshold as ink instead of those below it
	Invert bool
}

func DefaultImageOptions() ImageOptions {
	return ImageOptions{Threshold: DefaultThreshold}
}

// CellTable is an image-source glyph table: GridCells cells in row-major
// grid order, CellHeight little-endian 2 byte rows per cell.
type CellTable struct {
	CellWidth, CellHeight int

	buf *Buffer
}

// Opens and decodes an image file
func DecodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to decode image %s", path), err)
	}
	return img, nil
}

// BuildFromImage packs every cell of the 16x6 grid in img. Pixels are
// thresholded on luminance without dithering.
func BuildFromImage(img image.Image, opts ImageOptions) (*CellTable, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 || width%GridCols != 0 || height%GridRows != 0 {
		return nil, fmt.Errorf("%w: %dx%d is not a multiple of %dx%d", ErrImageGrid, width, height, GridCols, GridRows)
	}
	w, h := width/GridCols, height/GridRows
	if w > MaxCellWidth {
		return nil, fmt.Errorf("%w: cell width %d exceeds %d", ErrImageGrid, w, MaxCellWidth)
	}
	log.Debugf("image %dx%d, cells %dx%d", width, height, w, h)

	// Grayscale returns an NRGBA image anchored at (0, 0) with R == G == B
	gray := imaging.Grayscale(img)
	ink := func(x, y int) bool {
		l := gray.Pix[gray.PixOffset(x, y)]
		if opts.Invert {
			return l >= opts.Threshold
		}
		return l < opts.Threshold
	}

	t := &CellTable{CellWidth: w, CellHeight: h, buf: NewBuffer(GridCells, h, 2)}
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			cell := row*GridCols + col
			for y := 0; y < h; y++ {
				var bits uint16
				for x := 0; x < w; x++ {
					if ink(col*w+x, row*h+y) {
						bits |= 1 << x
					}
				}
				t.buf.OrRow(cell, y, bits)
			}
		}
	}
	return t, nil
}

// Returns the serialized table
func (t *CellTable) Bytes() []byte {
	return t.buf.Bytes()
}

func (t *CellTable) Buffer() *Buffer {
	return t.buf
}

// Row unpacks pixel row y of cell; bit x is column x.
func (t *CellTable) Row(cell, y int) uint16 {
	return t.buf.Row(cell, y)
}

// Renders a cell as text, 'X' for ink
func (t *CellTable) Render(cell int) string {
	return renderSlot(t.buf, cell, t.CellWidth)
}
