// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"context"
	"database/sql"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	want := []School{
		schoolAt("Alpha", 1),
		{Name: "Unknown", Phone: "020 7946 0000", Gender: "Boys", SENCategories: "Hearing impairment"},
		schoolAt("Beta", 3),
		{Name: "Half", Latitude: 51.5},
	}
	want[0].Rating = "Good"
	want[2].HasSpecialClasses = "Yes"

	var written int

	require.NoError(t, WriteSnapshot(db, NewTable("mem", want), func() { written++ }))
	assert.Equal(t, len(want), written)

	raw, err := ReadSnapshot(db)
	require.NoError(t, err)

	table, err := Normalize("mem", raw)
	require.NoError(t, err)

	got := slices.Collect(table.All())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-expected +got):\n%s", diff)
	}

	var cells int
	require.NoError(t, db.QueryRow("SELECT count(h3_cell) FROM schools").Scan(&cells))
	assert.Equal(t, 2, cells)

	var lats, lngs int
	require.NoError(t, db.QueryRow("SELECT count(latitude), count(longitude) FROM schools").Scan(&lats, &lngs))
	assert.Equal(t, 3, lats)
	assert.Equal(t, 2, lngs)
}

func TestLoadSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schools.duckdb")

	db, err := sql.Open("duckdb", path)
	require.NoError(t, err)
	require.NoError(t, WriteSnapshot(db, NewTable("mem", []School{schoolAt("Alpha", 2)}), nil))
	require.NoError(t, db.Close())

	table, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Alpha", table.At(0).Name)
	assert.True(t, table.At(0).HasLocation())
}
