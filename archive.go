package gradebook

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

// CheckerCopies are the file suffixes under which the checker workbook is shipped.
var CheckerCopies = []string{"1st Checker Add-up", "2nd Checker Add-up"}

// ArchiveEntry is one file in the output archive.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// Entries lists the files produced for a class, under a folder named after it:
// "{class}/{class} GRADEBOOK.xlsx" and, when a checker exists, one file per
// CheckerCopies suffix.
func (o *Output) Entries() []ArchiveEntry {
	dir := archiveDir(o.Class)
	entries := []ArchiveEntry{{
		Name: fmt.Sprintf("%s/%s GRADEBOOK.xlsx", dir, dir),
		Data: o.Full,
	}}
	if o.Checker == nil {
		return entries
	}
	for _, suffix := range CheckerCopies {
		entries = append(entries, ArchiveEntry{
			Name: fmt.Sprintf("%s/%s %s.xlsx", dir, dir, suffix),
			Data: o.Checker,
		})
	}
	return entries
}

// WriteArchive writes the outputs of all successful results as a zip archive.
// Failed results are skipped. It returns the number of classes written.
func WriteArchive(w io.Writer, results []Result) (int, error) {
	zw := zip.NewWriter(w)
	written := 0
	for _, r := range results {
		if r.Err != nil || r.Output == nil {
			continue
		}
		for _, e := range r.Output.Entries() {
			fw, err := zw.Create(e.Name)
			if err != nil {
				return written, fmt.Errorf("create %s: %w", e.Name, err)
			}
			if _, err := fw.Write(e.Data); err != nil {
				return written, fmt.Errorf("write %s: %w", e.Name, err)
			}
		}
		written++
	}
	if err := zw.Close(); err != nil {
		return written, fmt.Errorf("finish archive: %w", err)
	}
	return written, nil
}

// archiveDir makes a class name usable as a single path segment.
func archiveDir(class string) string {
	dir := strings.NewReplacer("/", "-", "\\", "-").Replace(strings.TrimSpace(class))
	if dir == "" || dir == "." || dir == ".." {
		return "class"
	}
	return dir
}
