// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcodagnone/schoolfinder/schools"
	"github.com/spf13/cobra"
)

var searchOptions struct {
	Postcode string
	Limit    int
	Gender   string
	Rating   string
	SEN      string
	Km       bool
	MapPath  string
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

// printResults renders resp as a box table.
func printResults(w io.Writer, resp *schools.Response) {
	if len(resp.Results) == 0 {
		fmt.Fprintf(w, "No schools near %s match the filters.\n", resp.Query.Postcode)

		return
	}

	a, b, c, d := strings.Repeat("─", 2), strings.Repeat("─", 36), strings.Repeat("─", 40), strings.Repeat("─", 12)

	fmt.Fprintf(w, "Nearest schools to %s:\n", resp.Query.Postcode)
	fmt.Fprintf(w, "╭─%2s─┬─%-36s─┬─%-40s─┬─%12s─╮\n", a, b, c, d)
	fmt.Fprintf(w, "│ %2s │ %-36s │ %-40s │ %12s │\n", "#", "School", "Address", "Distance")
	fmt.Fprintf(w, "├─%2s─┼─%-36s─┼─%-40s─┼─%12s─┤\n", a, b, c, d)

	for _, r := range resp.Results {
		address := strings.TrimSpace(r.Address() + " " + r.Postcode)
		fmt.Fprintf(w, "│ %2d │ %-36s │ %-40s │ %12s │\n",
			r.Rank,
			truncate(r.Name, 36),
			truncate(address, 40),
			schools.FormatDistance(r.Distance, resp.Policy),
		)
	}

	fmt.Fprintf(w, "╰─%2s─┴─%-36s─┴─%-40s─┴─%12s─╯\n", a, b, c, d)
}

func writeMap(path string, resp *schools.Response) error {
	data, err := json.MarshalIndent(schools.BuildMap(resp.Origin, resp.Results, resp.Policy).GeoJSON(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding map: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing map: %w", err)
	}

	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Lists the nearest schools to a postcode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		method, err := rootOptions.distanceMethod()
		if err != nil {
			return err
		}

		table, err := schools.Load(cmd.Context(), rootOptions.DataPath)
		if err != nil {
			return err
		}

		geocoder, err := rootOptions.newGeocoder(cmd.Context())
		if err != nil {
			return fmt.Errorf("building geocoder: %w", err)
		}

		policy := schools.MilesPolicy
		if searchOptions.Km {
			policy = schools.KilometersPolicy
		}

		q := schools.Query{
			Postcode: searchOptions.Postcode,
			Limit:    searchOptions.Limit,
			Filters: schools.Filters{
				Gender:   searchOptions.Gender,
				Rating:   searchOptions.Rating,
				SENTerms: schools.ParseSENTerms(searchOptions.SEN),
			},
		}

		resp, err := schools.NewSearcher(table, geocoder, rootOptions.GeocodeTimeout).
			Search(cmd.Context(), q, policy.WithMethod(method))
		if err != nil {
			return err
		}

		printResults(os.Stdout, resp)

		if searchOptions.MapPath != "" {
			if err := writeMap(searchOptions.MapPath, resp); err != nil {
				return err
			}

			fmt.Println("🗺️  Map written to", searchOptions.MapPath)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	flags := searchCmd.Flags()
	flags.StringVar(&searchOptions.Postcode, "postcode", "", "UK postcode to search from")
	flags.IntVar(&searchOptions.Limit, "limit", schools.DefaultLimit, "Maximum number of schools")
	flags.StringVar(&searchOptions.Gender, "gender", "", "Only schools with this gender value (e.g. Mixed)")
	flags.StringVar(&searchOptions.Rating, "rating", "", "Only schools with this Ofsted rating (e.g. Good)")
	flags.StringVar(&searchOptions.SEN, "sen", "", "Comma separated SEN terms, any of them matches")
	flags.BoolVar(&searchOptions.Km, "km", false, "Report kilometers with two decimals instead of whole miles")
	flags.StringVar(&searchOptions.MapPath, "map", "", "Write the results map as GeoJSON to this file")
	_ = searchCmd.MarkFlagRequired("postcode")
}
