// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/jcodagnone/schoolfinder/storage"
	"github.com/jcodagnone/schoolfinder/utils/textutils"
)

// RawTable is a source sheet before column reconciliation.
type RawTable struct {
	Header  []string
	Records [][]string
}

var errNoHeader = errors.New("no header row")

// Load reads and normalizes the dataset at location, which is a .csv, .xlsx
// or .duckdb file, or an s3:// object with one of those extensions.
// Failures are *LoadError.
func Load(ctx context.Context, location string) (*Table, error) {
	raw, err := readSource(ctx, location)
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}

	t, err := Normalize(location, raw)
	if err != nil {
		return nil, &LoadError{Source: location, Err: err}
	}

	log.Printf("Loaded %s schools from %s (%s with a known location, schema v%d)",
		textutils.FormatInt(t.Len()), location, textutils.FormatInt(t.Located()), SchemaVersion)

	return t, nil
}

// Normalize reconciles the columns of raw and builds the table.
func Normalize(source string, raw *RawTable) (*Table, error) {
	if raw == nil || len(raw.Header) == 0 {
		return nil, errNoHeader
	}

	cols := resolveColumns(raw.Header)
	if _, ok := cols[ColName]; !ok {
		log.Printf("⚠️ %s has no %s column", source, ColName)
	}

	rows := make([]School, 0, len(raw.Records))

	for _, record := range raw.Records {
		if isBlank(record) {
			continue
		}

		rows = append(rows, normalizeRow(cols, record))
	}

	return NewTable(source, rows), nil
}

func readSource(ctx context.Context, location string) (*RawTable, error) {
	if !strings.HasPrefix(location, storage.Scheme) {
		return readFile(location)
	}

	local, cleanup, err := storage.Fetch(ctx, location, storage.ConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer cleanup()

	return readFile(local)
}

func readFile(path string) (*RawTable, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".duckdb", ".db":
		return readSnapshot(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
}
