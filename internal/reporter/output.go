package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/afero"
)

// Format selects how unused files are written.
type Format string

const (
	// FormatText writes one path per line.
	FormatText Format = "text"
	// FormatJSON writes a JSON array of paths.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Write prints files to w in the given format.
func Write(w io.Writer, files []string, format Format) error {
	switch format {
	case FormatJSON:
		if files == nil {
			files = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	default:
		for _, f := range files {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil
	}
}

// maxSummaryColumn caps the path column so long paths do not push sizes off screen.
const maxSummaryColumn = 60

// SummaryEntry is one line of a summary.
type SummaryEntry struct {
	Path string
	Size int64 // -1 when the file could not be stat'ed
}

// Summarize looks up the size of every file, relative to cwd.
func Summarize(fs afero.Fs, cwd string, files []string) []SummaryEntry {
	entries := make([]SummaryEntry, len(files))
	for i, f := range files {
		entries[i] = SummaryEntry{Path: f, Size: -1}
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		if info, err := fs.Stat(p); err == nil {
			entries[i].Size = info.Size()
		}
	}
	return entries
}

// WriteSummary prints a human-oriented table of unused files and their sizes.
func WriteSummary(w io.Writer, entries []SummaryEntry, colored bool) error {
	paint := func(c color.Color, s string) string {
		if !colored {
			return s
		}
		return c.Sprint(s)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, paint(color.Green, "No unused files found"))
		return err
	}

	var total uint64
	width := 0
	for _, e := range entries {
		if e.Size > 0 {
			total += uint64(e.Size)
		}
		if pw := runewidth.StringWidth(e.Path); pw > width {
			width = pw
		}
	}
	if width > maxSummaryColumn {
		width = maxSummaryColumn
	}

	header := fmt.Sprintf("Unused files: %d (%s)", len(entries), humanize.Bytes(total))
	if _, err := fmt.Fprintln(w, paint(color.Yellow, header)); err != nil {
		return err
	}
	for _, e := range entries {
		size := "?"
		if e.Size >= 0 {
			size = humanize.Bytes(uint64(e.Size))
		}
		path := runewidth.Truncate(e.Path, width, "…")
		if _, err := fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(path, width), paint(color.Gray, size)); err != nil {
			return err
		}
	}
	return nil
}
