// Package csvstore is the flat-file record store the application used
// before the database: one CSV per collection, header row first,
// list-valued fields semicolon-joined. It remains the import format for
// legacy data directories.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Record is one row keyed by header name.
type Record map[string]string

type Store struct {
	path    string
	headers []string
}

func New(path string, headers []string) *Store {
	return &Store{path: path, headers: headers}
}

func (s *Store) Path() string {
	return s.path
}

// Ensure creates the backing file with its header row if it does not
// exist yet.
func (s *Store) Ensure() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.headers); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// ReadAll loads every record of the file. Missing trailing fields (older
// files written before a column existed) come back empty.
func (s *Store) ReadAll() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append writes records to the end of the file without touching existing
// rows.
func (s *Store) Append(records ...Record) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, rec := range records {
		if err := w.Write(s.row(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteAll replaces the whole file with the header row plus the given
// records.
func (s *Store) WriteAll(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.headers); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(s.row(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) row(rec Record) []string {
	row := make([]string, len(s.headers))
	for i, name := range s.headers {
		row[i] = rec[name]
	}
	return row
}

// Exists reports whether the backing file is present.
func (s *Store) Exists() (bool, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	return true, nil
}
