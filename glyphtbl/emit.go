package glyphtbl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
)

// Writes the table verbatim, no header
func WriteBinary(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// Writes the table verbatim to path, replacing any existing file
func WriteFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteBinary(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteOutput writes data to path as a C header when path ends in .h and
// as a raw table otherwise. name is used for the C symbols.
func WriteOutput(path, name string, data []byte, rowBytes int) error {
	if !strings.EqualFold(filepath.Ext(path), ".h") {
		return WriteFile(path, data)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EmitC(f, name, data, rowBytes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Symbol returns the C identifier prefix derived from a font or file name.
func Symbol(name string) string {
	s := strcase.ToScreamingSnake(name)
	if s == "" {
		return "GLYPHTBL"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "FONT_" + s
	}
	return s
}

// stickyWriter keeps the first write error
type stickyWriter struct {
	w   io.StringWriter
	err error
}

func (s *stickyWriter) printf(format string, a ...any) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(fmt.Sprintf(format, a...))
}

// EmitC writes the table as a C header declaring NAME_GLYPHS, NAME_GLYPHS_SIZE
// and NAME_ROW_BYTES.
func EmitC(b io.StringWriter, name string, data []byte, rowBytes int) error {
	sym := Symbol(name)
	w := &stickyWriter{w: b}

	w.printf(header, sym)
	w.printf("#define %s_GLYPHS_SIZE %d\n", sym, len(data))
	w.printf("#define %s_ROW_BYTES %d\n\n", sym, rowBytes)

	w.printf("const uint8_t %s_GLYPHS[%s_GLYPHS_SIZE] = {\n    ", sym, sym)
	bytesWritten := 0
	for i, v := range data {
		w.printf("0x%02x,", v)
		bytesWritten++
		if bytesWritten == 16 && i != len(data)-1 {
			w.printf("\n    ")
			bytesWritten = 0
		} else if i != len(data)-1 {
			w.printf(" ")
		}
	}
	w.printf("\n};\n\n")

	w.printf(footer, sym)
	return w.err
}

const header = `#ifndef _%s_GLYPHS_H_
#define _%[1]s_GLYPHS_H_

#include <stdint.h>

`

const footer = "#endif // _%s_GLYPHS_H_\n"
