// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// A ParseError reports a malformed input table.
type ParseError struct {
	// Line is the 1-based line of the offending record.
	Line int

	// Msg describes the problem.
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Load reads the delimited text file at path into a Dataset.
//
// If the file does not exist, the returned error wraps fs.ErrNotExist.
// Malformed input surfaces as a *ParseError. Loading the same file
// twice yields equal Datasets.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadCSV reads a comma-delimited table with a header row from r.
func ReadCSV(r io.Reader) (*Dataset, error) {
	return ReadCSVDelim(r, ',')
}

// ReadCSVDelim reads a table delimited by sep with a header row from
// r. The header names the columns; every following record must have
// the same number of fields. A header with no records is a valid,
// empty Dataset.
func ReadCSVDelim(r io.Reader, sep rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	// FieldsPerRecord defaults to the header's width, so the csv
	// reader rejects ragged records for us.

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Msg: "empty input: no header row"}
	}
	if err != nil {
		return nil, parseErr(err)
	}
	names := make([]string, len(header))
	seen := make(map[string]bool)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &ParseError{Line: 1, Msg: fmt.Sprintf("empty name for column %d", i+1)}
		}
		if seen[name] {
			return nil, &ParseError{Line: 1, Msg: fmt.Sprintf("duplicate column %q", name)}
		}
		seen[name] = true
		names[i] = name
	}

	cols := make([][]string, len(names))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErr(err)
		}
		for i, cell := range rec {
			cols[i] = append(cols[i], strings.TrimSpace(cell))
		}
	}

	d := &Dataset{index: make(map[string]int)}
	for i, name := range names {
		d.fields = append(d.fields, newField(name, cols[i]))
		d.index[name] = i
	}
	return d, nil
}

// parseErr converts the csv package's positioned errors into
// ParseErrors.
func parseErr(err error) error {
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		return &ParseError{Line: ce.Line, Msg: ce.Err.Error()}
	}
	return err
}
