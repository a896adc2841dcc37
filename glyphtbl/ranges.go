package glyphtbl

import (
	"errors"
	"fmt"
)

// Number of slots owned by one high byte
const blockSize = 256

var ErrRangeTable = errors.New("invalid code range table")

// Defines a block of character code high bytes, Low <= h < High
type CodeRange struct {
	Low, High uint16
}

func (r CodeRange) slots() int {
	return int(r.High-r.Low) * blockSize
}

// RangeTable maps 16-bit character codes onto dense glyph slots.
// Ranges are ascending, disjoint and packed in declaration order.
type RangeTable struct {
	ranges []CodeRange
	total  int
}

var defaultRanges = mustRangeTable(
	CodeRange{0x00, 0x01},
	CodeRange{0x03, 0x05},
	CodeRange{0x20, 0x27},
	CodeRange{0x30, 0x31},
	CodeRange{0x32, 0x34},
	CodeRange{0x4e, 0xa0},
	CodeRange{0xff, 0x100},
)

// Returns the range table used by the firmware font
func DefaultRanges() RangeTable {
	return defaultRanges
}

func mustRangeTable(ranges ...CodeRange) RangeTable {
	t, err := NewRangeTable(ranges...)
	if err != nil {
		panic(err)
	}
	return t
}

// NewRangeTable validates ranges and returns an immutable table.
func NewRangeTable(ranges ...CodeRange) (RangeTable, error) {
	if len(ranges) == 0 {
		return RangeTable{}, fmt.Errorf("%w: no ranges", ErrRangeTable)
	}
	t := RangeTable{ranges: make([]CodeRange, len(ranges))}
	for i, r := range ranges {
		switch {
		case r.Low >= r.High:
			return RangeTable{}, fmt.Errorf("%w: empty range 0x%02x-0x%02x", ErrRangeTable, r.Low, r.High)
		case r.High > blockSize:
			return RangeTable{}, fmt.Errorf("%w: range end 0x%x exceeds 0x100", ErrRangeTable, r.High)
		case i > 0 && r.Low < ranges[i-1].High:
			return RangeTable{}, fmt.Errorf("%w: range 0x%02x-0x%02x overlaps or precedes 0x%02x-0x%02x",
				ErrRangeTable, r.Low, r.High, ranges[i-1].Low, ranges[i-1].High)
		}
		t.ranges[i] = r
		t.total += r.slots()
	}
	return t, nil
}

// Returns a copy of the ranges
func (t RangeTable) Ranges() []CodeRange {
	return append([]CodeRange(nil), t.ranges...)
}

// Total number of glyph slots
func (t RangeTable) SlotCount() int {
	return t.total
}

// Size in bytes of an 8 byte per slot table
func (t RangeTable) BufferSize() int {
	return t.total * CellRows
}

// Slot returns the dense slot of code, or false when its high byte is not
// covered by any range.
func (t RangeTable) Slot(code uint16) (int, bool) {
	high, low := code>>8, code&0xff
	offset := 0
	for _, r := range t.ranges {
		if high < r.Low {
			return 0, false
		}
		if high < r.High {
			return offset + int(high-r.Low)*blockSize + int(low), true
		}
		offset += r.slots()
	}
	return 0, false
}

// Code is the inverse of Slot.
func (t RangeTable) Code(slot int) (uint16, bool) {
	if slot < 0 {
		return 0, false
	}
	for _, r := range t.ranges {
		if slot < r.slots() {
			return r.Low<<8 + uint16(slot), true
		}
		slot -= r.slots()
	}
	return 0, false
}
