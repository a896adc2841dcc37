package glyphtbl

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a flat, zeroed glyph table of fixed-size slot records.
// Each slot holds rowsPerSlot rows of rowBytes bytes; 2 byte rows are little-endian.
type Buffer struct {
	data        []byte
	slots       int
	rowsPerSlot int
	rowBytes    int
}

func NewBuffer(slots, rowsPerSlot, rowBytes int) *Buffer {
	if rowBytes != 1 && rowBytes != 2 {
		panic(fmt.Sprintf("glyphtbl: unsupported row width %d", rowBytes))
	}
	return &Buffer{
		data:        make([]byte, slots*rowsPerSlot*rowBytes),
		slots:       slots,
		rowsPerSlot: rowsPerSlot,
		rowBytes:    rowBytes,
	}
}

func (b *Buffer) offset(slot, row int) int {
	if slot < 0 || slot >= b.slots || row < 0 || row >= b.rowsPerSlot {
		panic(fmt.Sprintf("glyphtbl: slot %d row %d out of range (%d slots, %d rows)", slot, row, b.slots, b.rowsPerSlot))
	}
	return (slot*b.rowsPerSlot + row) * b.rowBytes
}

// ORs bits into a row of a slot
func (b *Buffer) OrRow(slot, row int, bits uint16) {
	off := b.offset(slot, row)
	if b.rowBytes == 1 {
		b.data[off] |= byte(bits)
		return
	}
	v := binary.LittleEndian.Uint16(b.data[off:])
	binary.LittleEndian.PutUint16(b.data[off:], v|bits)
}

// Reads a row of a slot back
func (b *Buffer) Row(slot, row int) uint16 {
	off := b.offset(slot, row)
	if b.rowBytes == 1 {
		return uint16(b.data[off])
	}
	return binary.LittleEndian.Uint16(b.data[off:])
}

func (b *Buffer) Bytes() []byte    { return b.data }
func (b *Buffer) Slots() int       { return b.slots }
func (b *Buffer) RowsPerSlot() int { return b.rowsPerSlot }
func (b *Buffer) RowBytes() int    { return b.rowBytes }
