package glyphtbl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSymbol(t *testing.T) {
	cases := map[string]string{
		"unifont": "UNIFONT",
		"my font": "MY_FONT",
		"8":       "FONT_8",
		"":        "GLYPHTBL",
	}
	for in, want := range cases {
		if got := Symbol(in); got != want {
			t.Errorf("Symbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmitC(t *testing.T) {
	data := make([]byte, 17)
	for i := range data {
		data[i] = byte(i + 1)
	}
	var sb strings.Builder
	if err := EmitC(&sb, "unifont", data, 1); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"#ifndef _UNIFONT_GLYPHS_H_\n",
		"#define UNIFONT_GLYPHS_SIZE 17\n",
		"#define UNIFONT_ROW_BYTES 1\n",
		"const uint8_t UNIFONT_GLYPHS[UNIFONT_GLYPHS_SIZE] = {\n    0x01, 0x02,",
		"0x0f, 0x10,\n    0x11,\n};\n",
		"#endif // _UNIFONT_GLYPHS_H_\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

type failingWriter struct{}

func (failingWriter) WriteString(string) (int, error) { return 0, errors.New("disk full") }

func TestEmitCWriteError(t *testing.T) {
	if err := EmitC(failingWriter{}, "x", []byte{1}, 1); err == nil {
		t.Error("expected the write error")
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0x00, 0xff, 0x18, 0x24}

	bin := filepath.Join(dir, "font.bin")
	if err := WriteOutput(bin, "font", data, 1); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(bin)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("raw output = % x, want % x", got, data)
	}

	hdr := filepath.Join(dir, "font.H")
	if err := WriteOutput(hdr, "font", data, 2); err != nil {
		t.Fatal(err)
	}
	got, err = os.ReadFile(hdr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(got, []byte("#ifndef _FONT_GLYPHS_H_")) || !bytes.Contains(got, []byte("#define FONT_ROW_BYTES 2")) {
		t.Errorf("header output:\n%s", got)
	}

	if err := WriteFile(filepath.Join(dir, "missing", "font.bin"), data); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
