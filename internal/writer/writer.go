// Package writer is the render sink: where a rendered template's output
// goes once formatting is done. It mirrors the teacher's dry-run/commit
// split so the CLI can preview a batch of renders before writing any of
// them to disk.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer is the sink a render's output is written to.
type Writer interface {
	WriteFile(path string, content []byte, perm os.FileMode) error
	Summary() string
}

// RenderChange describes one file a DryRunWriter would modify.
type RenderChange struct {
	Path         string
	OriginalSize int
	NewSize      int
	BytesDiff    int
}

// DryRunWriter records what would be written without touching disk.
type DryRunWriter struct {
	changes []RenderChange
}

// NewDryRunWriter builds a DryRunWriter.
func NewDryRunWriter() *DryRunWriter {
	return &DryRunWriter{}
}

// WriteFile records the change path would undergo, without writing it.
func (w *DryRunWriter) WriteFile(path string, content []byte, _ os.FileMode) error {
	var originalSize int
	if stat, err := os.Stat(path); err == nil {
		originalSize = int(stat.Size())
	}

	newSize := len(content)
	w.changes = append(w.changes, RenderChange{
		Path:         path,
		OriginalSize: originalSize,
		NewSize:      newSize,
		BytesDiff:    newSize - originalSize,
	})
	return nil
}

// Summary reports the files that would be written and their byte deltas.
func (w *DryRunWriter) Summary() string {
	if len(w.changes) == 0 {
		return "No changes would be made."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Would write %d file(s):\n", len(w.changes))

	total := 0
	for _, c := range w.changes {
		total += c.BytesDiff
		fmt.Fprintf(&sb, "  %s (%+d bytes)\n", c.Path, c.BytesDiff)
	}
	fmt.Fprintf(&sb, "Total: %+d bytes\n", total)
	return sb.String()
}

// DiskWriter writes render output to disk, one file at a time, atomically.
type DiskWriter struct {
	written []string
}

// NewDiskWriter builds a DiskWriter.
func NewDiskWriter() *DiskWriter {
	return &DiskWriter{}
}

// WriteFile atomically writes content to path, creating parent
// directories as needed.
func (w *DiskWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writer: create directory for %s: %w", path, err)
	}
	if err := writeFileAtomic(path, content, perm); err != nil {
		return fmt.Errorf("writer: write %s: %w", path, err)
	}
	w.written = append(w.written, path)
	return nil
}

// Summary reports the files that were written.
func (w *DiskWriter) Summary() string {
	if len(w.written) == 0 {
		return "No files were written."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Wrote %d file(s):\n", len(w.written))
	for _, path := range w.written {
		fmt.Fprintf(&sb, "  %s\n", path)
	}
	return sb.String()
}

// StdoutWriter writes every render's output straight to an io.Writer
// (typically os.Stdout), ignoring path — used when the CLI is run with
// --stdout.
type StdoutWriter struct {
	sink  interface{ Write(p []byte) (int, error) }
	count int
}

// NewStdoutWriter builds a StdoutWriter over sink.
func NewStdoutWriter(sink interface{ Write(p []byte) (int, error) }) *StdoutWriter {
	return &StdoutWriter{sink: sink}
}

// WriteFile writes content to the underlying sink; path and perm are
// unused (stdout has no path of its own).
func (w *StdoutWriter) WriteFile(_ string, content []byte, _ os.FileMode) error {
	if _, err := w.sink.Write(content); err != nil {
		return fmt.Errorf("writer: write to stdout: %w", err)
	}
	w.count++
	return nil
}

// Summary reports how many renders were streamed to stdout.
func (w *StdoutWriter) Summary() string {
	return fmt.Sprintf("Streamed %d render(s) to stdout.\n", w.count)
}

// writeFileAtomic writes data to path via a temp file in the same
// directory, then renames it into place, so a crash mid-write never
// leaves a truncated file at path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
