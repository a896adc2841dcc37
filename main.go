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

// Converts a BDF font into a flat 8x8 glyph table laid out by the default code ranges.
// Without an output file the font is only validated.

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("glyphtbl — a BDF to binary glyph table converter\nUsage:\n\tglyphtbl <input file> [<output file>]\n\nOutput files ending in .h are written as C headers.")
		os.Exit(1)
	}

	// Diagnostics go to stdout even on a dry run
	log.SetOutput(os.Stdout)
	cfg, err := config.Load(config.DefaultFiles...)
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}
	cfg.Apply()

	inPath := os.Args[1]
	table, err := glyphtbl.ParseBDF(inPath, glyphtbl.DefaultRanges())
	if err != nil {
		log.Fatalf("failed to parse font: %s", err)
	}
	log.Infof("%d glyphs, %d unmapped, %d rows clipped, %d slots",
		table.Stats.Glyphs, table.Stats.Unmapped, table.Stats.ClippedRows, table.Ranges.SlotCount())

	if len(os.Args) < 3 {
		return
	}
	outPath := os.Args[2]

	name := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	err = glyphtbl.WriteOutput(outPath, name, table.Bytes(), table.Buffer().RowBytes())
	if err != nil {
		log.Fatalf("failed to write %s: %s", outPath, err)
	}
	log.Infof("wrote %d bytes to %s", len(table.Bytes()), outPath)
}

