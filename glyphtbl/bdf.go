package glyphtbl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/runenames"
)

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrUnterminated  = errors.New("glyph not terminated by ENDCHAR")
)

// Rows between the baseline and the bottom of the cell
const descent = 2

type parseState int

const (
	stateIdle parseState = iota
	stateAwaitingBitmap
	stateReadingRows
)

func (s parseState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAwaitingBitmap:
		return "awaiting bitmap"
	case stateReadingRows:
		return "reading rows"
	}
	return fmt.Sprintf("parseState(%d)", int(s))
}

// Raster state of the glyph being read
type glyphState struct {
	code    int
	slot    int
	bbx     BBX
	row     int
	clipped int
}

type bdfParser struct {
	table *Table
	state parseState
	glyph glyphState
	line  int
}

// Parses a BDF font file into a glyph table laid out by ranges
func ParseBDF(path string, ranges RangeTable) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadBDF(f, ranges)
}

// ReadBDF streams BDF glyph definitions from r. Glyphs whose code is not
// covered by ranges are written to slot 0.
func ReadBDF(r io.Reader, ranges RangeTable) (*Table, error) {
	if ranges.SlotCount() == 0 {
		return nil, fmt.Errorf("%w: no slots", ErrRangeTable)
	}
	p := &bdfParser{table: newTable(ranges)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.feed(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Join(errors.New("failed to read font"), err)
	}
	if p.state != stateIdle {
		return nil, fmt.Errorf("%w: glyph 0x%04X (%s at end of input)", ErrUnterminated, p.glyph.code, p.state)
	}
	return p.table, nil
}

func (p *bdfParser) feed(line string) error {
	fields := strings.Fields(line)
	keyword := ""
	if len(fields) > 0 {
		keyword = fields[0]
	}

	switch p.state {
	case stateIdle:
		switch keyword {
		case "FONT":
			if p.table.Name == "" {
				p.table.Name = strings.TrimSpace(strings.TrimPrefix(line, "FONT"))
			}
		case "ENCODING":
			return p.startGlyph(fields)
		}
	case stateAwaitingBitmap:
		switch keyword {
		case "BBX":
			return p.parseBBX(fields)
		case "BITMAP":
			p.state = stateReadingRows
			p.glyph.row = 0
		case "ENDCHAR":
			p.endGlyph()
		}
	case stateReadingRows:
		if keyword == "ENDCHAR" {
			p.endGlyph()
			return nil
		}
		return p.readRow(line)
	}
	return nil
}

func (p *bdfParser) malformed(what, line string, err error) error {
	if err != nil {
		return fmt.Errorf("line %d: %w: %s %q: %v", p.line, ErrMalformedLine, what, line, err)
	}
	return fmt.Errorf("line %d: %w: %s %q", p.line, ErrMalformedLine, what, line)
}

func (p *bdfParser) startGlyph(fields []string) error {
	if len(fields) < 2 {
		return p.malformed("encoding", strings.Join(fields, " "), nil)
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return p.malformed("encoding", strings.Join(fields, " "), err)
	}

	slot, ok := 0, false
	if code >= 0 && code <= 0xffff {
		slot, ok = p.table.Ranges.Slot(uint16(code))
	}
	if !ok {
		log.Warnf("invalid character 0x%02X%s, using slot 0", code, runeName(code))
		p.table.Stats.Unmapped++
		slot = 0
	}
	log.Debugf("glyph 0x%04X -> slot %d", code, slot)

	p.glyph = glyphState{code: code, slot: slot}
	p.state = stateAwaitingBitmap
	return nil
}

func runeName(code int) string {
	if code < 0 || code > 0x10ffff {
		return ""
	}
	if name := runenames.Name(rune(code)); name != "" {
		return " (" + name + ")"
	}
	return ""
}

func (p *bdfParser) parseBBX(fields []string) error {
	if len(fields) != 5 {
		return p.malformed("bounding box", strings.Join(fields, " "), nil)
	}
	var v [4]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return p.malformed("bounding box", strings.Join(fields, " "), err)
		}
		v[i] = n
	}
	bbx := BBX{Width: v[0], Height: v[1], XOff: v[2], YOff: v[3]}
	if bbx.XOff < 0 {
		// negative X offsets can't be represented in the cell
		log.Debugf("glyph 0x%04X: clamping x offset %d to 0", p.glyph.code, bbx.XOff)
		bbx.XOff = 0
	}
	p.glyph.bbx = bbx
	return nil
}

func (p *bdfParser) readRow(line string) error {
	if line == "" || len(line) > 16 {
		return p.malformed("bitmap row", line, nil)
	}
	v, err := strconv.ParseUint(line, 16, 64)
	if err != nil {
		return p.malformed("bitmap row", line, err)
	}
	// rows wider than the cell keep their leftmost 8 columns
	if n := len(line); n > 2 {
		if n%2 != 0 {
			return p.malformed("bitmap row", line, nil)
		}
		v >>= 4 * uint(n-2)
	}

	g := &p.glyph
	target := g.row + CellRows - (g.bbx.YOff + g.bbx.Height) - descent
	g.row++
	if target < 0 || target >= CellRows {
		g.clipped++
		return nil
	}
	p.table.buf.OrRow(g.slot, target, uint16(packRow(byte(v), g.bbx.XOff)))
	return nil
}

// packRow converts an MSB-first raster byte into a cell row where column c
// is bit c, shifted right by xoff columns. Columns pushed past the cell are dropped.
func packRow(v byte, xoff int) byte {
	var out byte
	for i := xoff; i < CellCols; i++ {
		out |= ((v >> i) & 1) << (7 - i + xoff)
	}
	return out
}

func (p *bdfParser) endGlyph() {
	g := p.glyph
	if g.clipped > 0 {
		log.Warnf("glyph 0x%04X: %d rows outside the cell were clipped (BBX %s)", g.code, g.clipped, g.bbx)
		p.table.Stats.ClippedRows += g.clipped
	}
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("glyph 0x%04X:\n%s", g.code, renderSlot(p.table.buf, g.slot, CellCols))
	}
	p.table.Stats.Glyphs++
	p.glyph = glyphState{}
	p.state = stateIdle
}
