// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/schoolfinder/schools"
	"github.com/jcodagnone/schoolfinder/utils/textutils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importOptions struct {
	Out string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Normalizes the dataset into a DuckDB snapshot",
	Long: `
import reads --data, reconciles its columns and writes the normalized rows,
with their H3 cell, to the schools table of a DuckDB file. Pass the file back
as --data to skip spreadsheet parsing at startup.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := schools.Load(cmd.Context(), rootOptions.DataPath)
		if err != nil {
			return err
		}

		db, err := sql.Open("duckdb", importOptions.Out)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(table.Len(),
				progressbar.OptionSetDescription("Writing schools"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		err = schools.WriteSnapshot(db, table, func() {
			if bar != nil {
				_ = bar.Add(1)
			}
		})
		if bar != nil {
			_ = bar.Finish()
		}

		if err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}

		log.Printf("Wrote %s schools (%s located) to %s",
			textutils.FormatInt(table.Len()), textutils.FormatInt(table.Located()), importOptions.Out)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(
		&importOptions.Out,
		"out",
		"schools.duckdb",
		"DuckDB file to write",
	)
}
