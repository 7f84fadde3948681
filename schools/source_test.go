// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "\ufeffEstablishmentName,Street,Town,Postcode,TelephoneNum,Gender (name),SpecialClasses (name),OfstedRating (name),AllSEN,Latitude,Longitude\n" +
	"Alpha Primary,1 High St,London,SW1A 1AA,2071234567,Mixed,No,Good,\"Autism, ADHD\",51.5010,-0.1416\n" +
	"Beta Academy,2 Low Rd,London,SW1A 2AA,,Girls,Yes,Outstanding,,0,0\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "schools.csv", sampleCSV)

	table, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	alpha := table.At(0)
	assert.Equal(t, "Alpha Primary", alpha.Name)
	assert.Equal(t, "1 High St, London", alpha.Address())
	assert.Equal(t, "2071234567", alpha.Phone)
	assert.Equal(t, "Mixed", alpha.Gender)
	assert.Equal(t, "No", alpha.HasSpecialClasses)
	assert.Equal(t, "Good", alpha.Rating)
	assert.Equal(t, "Autism, ADHD", alpha.SENCategories)
	assert.True(t, alpha.HasLocation())

	beta := table.At(1)
	assert.Empty(t, beta.Phone)
	assert.Empty(t, beta.SENCategories)
	assert.False(t, beta.HasLocation())
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"EstablishmentName", "TelephoneNum", "Gender", "Rating", "Latitude", "Longitude"},
		{"Alpha Primary", 2071234567, "Mixed", "Good", 51.501, -0.1416},
		{"Gamma School", "020 7946 0000", "Boys", "Requires improvement", "", ""},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "schools.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, "2071234567", table.At(0).Phone)
	assert.InDelta(t, 51.501, table.At(0).Latitude, 1e-9)
	assert.Equal(t, "020 7946 0000", table.At(1).Phone)
	assert.False(t, table.At(1).HasLocation())
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.csv")},
		{"unsupported extension", writeFile(t, "schools.json", "[]")},
		{"empty csv", writeFile(t, "empty.csv", "")},
		{"missing snapshot", filepath.Join(t.TempDir(), "nope.duckdb")},
		{"bad s3 url", "s3://bucket-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(context.Background(), tt.path)
			require.Error(t, err)
			assert.Nil(t, table)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.path, loadErr.Source)
			assert.Equal(t, KindDataLoad, KindOf(err))
		})
	}
}
