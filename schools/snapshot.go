// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
)

// CreateSnapshotSchema (re)creates the schools table of a snapshot database.
func CreateSnapshotSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE OR REPLACE TABLE schools (
			row_id              INTEGER PRIMARY KEY,
			name                VARCHAR NOT NULL,
			street              VARCHAR NOT NULL,
			town                VARCHAR NOT NULL,
			postcode            VARCHAR NOT NULL,
			phone               VARCHAR NOT NULL,
			gender              VARCHAR NOT NULL,
			head_title          VARCHAR NOT NULL,
			has_special_classes VARCHAR NOT NULL,
			rating              VARCHAR NOT NULL,
			sen_categories      VARCHAR NOT NULL,
			latitude            DOUBLE,
			longitude           DOUBLE,
			h3_cell             BIGINT,
			schema_version      INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schools table: %w", err)
	}

	return nil
}

// WriteSnapshot stores every row of t. progress, when set, is called once per
// row written.
func WriteSnapshot(db *sql.DB, t *Table, progress func()) error {
	if err := CreateSnapshotSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback snapshot transaction: %v", err)
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO schools (
			row_id, name, street, town, postcode, phone, gender, head_title,
			has_special_classes, rating, sen_categories, latitude, longitude,
			h3_cell, schema_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, s := range t.schools {
		var lat, lng, cell any
		if s.Latitude != 0 {
			lat = s.Latitude
		}

		if s.Longitude != 0 {
			lng = s.Longitude
		}

		if s.Cell != 0 {
			cell = int64(s.Cell)
		}

		if _, err := stmt.Exec(
			i, s.Name, s.Street, s.Town, s.Postcode, s.Phone, s.Gender, s.HeadTitle,
			s.HasSpecialClasses, s.Rating, s.SENCategories, lat, lng, cell, SchemaVersion,
		); err != nil {
			return fmt.Errorf("inserting row %d (%s): %w", i, s.Name, err)
		}

		if progress != nil {
			progress()
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	return nil
}

// ReadSnapshot returns the snapshot rows under canonical headers so they go
// through the same normalization as any other source.
func ReadSnapshot(db *sql.DB) (*RawTable, error) {
	rows, err := db.Query(`
		SELECT name, street, town, postcode, phone, gender, head_title,
		       has_special_classes, rating, sen_categories, latitude, longitude
		FROM schools
		ORDER BY row_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	raw := &RawTable{Header: []string{
		ColName, ColStreet, ColTown, ColPostcode, ColPhone, ColGender, ColHeadTitle,
		ColHasSpecialClasses, ColRating, ColSEN, ColLatitude, ColLongitude,
	}}

	for rows.Next() {
		record := make([]string, len(raw.Header))

		var lat, lng sql.NullFloat64

		if err := rows.Scan(
			&record[0], &record[1], &record[2], &record[3], &record[4], &record[5],
			&record[6], &record[7], &record[8], &record[9], &lat, &lng,
		); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}

		record[10] = formatNullFloat(lat)
		record[11] = formatNullFloat(lng)
		raw.Records = append(raw.Records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot: %w", err)
	}

	return raw, nil
}

func formatNullFloat(f sql.NullFloat64) string {
	if !f.Valid {
		return ""
	}

	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}

func readSnapshot(path string) (*RawTable, error) {
	// Opening a missing path would create an empty database.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	return ReadSnapshot(db)
}
