// Command img2tbl converts an image holding a 16x6 grid of glyph cells into a
// flat table of little-endian 16-bit rows, one cell after another.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pcm720/glyphtbl/config"
	"github.com/pcm720/glyphtbl/glyphtbl"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input image> <output file>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	inPath, outPath := os.Args[1], os.Args[2]

	cfg, err := config.Load(config.DefaultFiles...)
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}
	cfg.Apply()

	img, err := glyphtbl.DecodeImage(inPath)
	if err != nil {
		log.Fatal(err)
	}
	table, err := glyphtbl.BuildFromImage(img, cfg.Image)
	if err != nil {
		log.Fatalf("failed to convert %s: %s", inPath, err)
	}
	if log.IsLevelEnabled(log.TraceLevel) {
		for cell := 0; cell < glyphtbl.GridCells; cell++ {
			log.Tracef("cell %d:\n%s", cell, table.Render(cell))
		}
	}

	name := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	if err := glyphtbl.WriteOutput(outPath, name, table.Bytes(), table.Buffer().RowBytes()); err != nil {
		log.Fatalf("failed to write %s: %s", outPath, err)
	}
	log.Infof("wrote %d cells of %dx%d (%d bytes) to %s",
		glyphtbl.GridCells, table.CellWidth, table.CellHeight, len(table.Bytes()), outPath)
}
