package glyphtbl

import (
	"fmt"
	"strings"
)

// Fixed glyph cell of the text-source table: 8 rows of 8 columns, one byte per row.
// Column c of a row is bit c.
const (
	CellRows = 8
	CellCols = 8
)

// Defines a BDF glyph bounding box: width, height and the offset of its
// lower-left corner from the origin
type BBX struct {
	Width, Height, XOff, YOff int
}

func (b BBX) String() string {
	return fmt.Sprintf("%d %d %d %d", b.Width, b.Height, b.XOff, b.YOff)
}

// Conversion counters
type Stats struct {
	Glyphs      int // glyphs terminated by ENDCHAR
	Unmapped    int // glyphs redirected to slot 0
	ClippedRows int // raster rows outside the cell
}

// Table is a text-source glyph table laid out by a RangeTable.
type Table struct {
	Name   string
	Ranges RangeTable
	Stats  Stats

	buf *Buffer
}

func newTable(ranges RangeTable) *Table {
	return &Table{
		Ranges: ranges,
		buf:    NewBuffer(ranges.SlotCount(), CellRows, 1),
	}
}

// Returns the serialized table, 8 bytes per slot
func (t *Table) Bytes() []byte {
	return t.buf.Bytes()
}

func (t *Table) Buffer() *Buffer {
	return t.buf
}

// Glyph unpacks the cell stored for code.
func (t *Table) Glyph(code uint16) (rows [CellRows]byte, ok bool) {
	slot, ok := t.Ranges.Slot(code)
	if !ok {
		return rows, false
	}
	for y := range rows {
		rows[y] = byte(t.buf.Row(slot, y))
	}
	return rows, true
}

// Renders the cell stored for code as text, 'X' for set pixels
func (t *Table) Render(code uint16) (string, bool) {
	slot, ok := t.Ranges.Slot(code)
	if !ok {
		return "", false
	}
	return renderSlot(t.buf, slot, CellCols), true
}

func renderSlot(b *Buffer, slot, width int) string {
	var sb strings.Builder
	for y := 0; y < b.RowsPerSlot(); y++ {
		row := b.Row(slot, y)
		sb.WriteByte('[')
		for x := 0; x < width; x++ {
			if (row>>x)&1 != 0 {
				sb.WriteByte('X')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
