// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet. Cells are read raw so numeric phone numbers
// and coordinates are not reformatted by the sheet's number format.
func readXLSX(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoHeader
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, errNoHeader
	}

	return &RawTable{Header: rows[0], Records: rows[1:]}, nil
}
