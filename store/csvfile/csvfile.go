/*
Package csvfile provides the CSV-backed History implementation.

PURPOSE:
  Persists the full record sequence in a flat CSV file with the exact
  column layout defined by tenancy.Columns(). This is the contractual
  storage format: other tooling reads the same file.

LOAD:
  A missing file is a fresh session: Load returns an empty sequence.
  Files written by older versions (missing newer columns) load cleanly;
  the codec defaults absent columns to empty text and the next flush
  writes the full layout.

FLUSH:
  Flush rewrites the whole file through a temp-file-and-rename, so a
  crash mid-write leaves the previous file intact (atomic-or-failed,
  no partial-write recovery).

SEE ALSO:
  - tenancy/codec.go: Row encoding shared with the export endpoint
  - store/sqlite: Database-backed alternative
*/
package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/warp/tenancy-engine/tenancy"
)

// History persists records in a CSV file at Path.
type History struct {
	Path string
}

func New(path string) *History {
	return &History{Path: path}
}

func (h *History) Load(_ context.Context) ([]tenancy.Record, error) {
	f, err := os.Open(h.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	return tenancy.ReadCSV(f)
}

func (h *History) Flush(_ context.Context, records []tenancy.Record) error {
	dir := filepath.Dir(h.Path)
	tmp, err := os.CreateTemp(dir, ".tenant_history-*.csv")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := tenancy.WriteCSV(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tmp.Name(), h.Path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
