// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/jcodagnone/schoolfinder/geocoding"
	"github.com/jcodagnone/schoolfinder/spatial"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options are the settings shared by every command. Flags win over the
// environment, which may be seeded from a .env file.
type options struct {
	DataPath       string
	Geocoder       string
	GeocoderURL    string
	GeocodeTimeout time.Duration
	DistanceMethod string
	TraceHTTP      bool
	EnvFile        string
}

var rootOptions = &options{}

// envOverrides maps flag names to the variables that set them when the flag
// is not given on the command line.
var envOverrides = map[string]string{
	"data":         "SCHOOLFINDER_DATA",
	"geocoder":     "SCHOOLFINDER_GEOCODER",
	"geocoder-url": "POSTCODES_API_URL",
}

func (o *options) load(cmd *cobra.Command) error {
	if err := godotenv.Load(o.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", o.EnvFile, err)
	}

	for name, key := range envOverrides {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}

		if v := os.Getenv(key); v != "" {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}

	return nil
}

func (o *options) distanceMethod() (spatial.Method, error) {
	return spatial.ParseMethod(o.DistanceMethod)
}

func (o *options) newGeocoder(ctx context.Context) (geocoding.Geocoder, error) {
	opts := geocoding.Options{
		BaseURL:   o.GeocoderURL,
		Timeout:   o.GeocodeTimeout,
		UserAgent: fmt.Sprintf("schoolfinder/%s (+https://github.com/jcodagnone/schoolfinder)", Version),
	}

	if o.TraceHTTP {
		opts.Trace = os.Stderr
	}

	if o.Geocoder == geocoding.ProviderGoogle {
		key, err := geocoding.ResolveGoogleAPIKey(ctx)
		if err != nil {
			return nil, err
		}

		opts.APIKey = key
	}

	return geocoding.New(o.Geocoder, opts)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(
		&rootOptions.DataPath,
		"data",
		"data.xlsx",
		"School dataset: .csv, .xlsx, .duckdb or s3://bucket/key (env SCHOOLFINDER_DATA)",
	)
	flags.StringVar(
		&rootOptions.Geocoder,
		"geocoder",
		geocoding.ProviderPostcodes,
		"Geocoding provider: postcodes or google (env SCHOOLFINDER_GEOCODER)",
	)
	flags.StringVar(
		&rootOptions.GeocoderURL,
		"geocoder-url",
		"",
		"Override the geocoding endpoint (env POSTCODES_API_URL)",
	)
	flags.DurationVar(
		&rootOptions.GeocodeTimeout,
		"geocode-timeout",
		geocoding.DefaultTimeout,
		"Timeout of a single geocoding request",
	)
	flags.StringVar(
		&rootOptions.DistanceMethod,
		"distance-method",
		string(spatial.Geodesic),
		"Distance formula: geodesic or haversine",
	)
	flags.BoolVar(
		&rootOptions.TraceHTTP,
		"trace-http",
		false,
		"Trace outgoing geocoding requests to stderr",
	)
	flags.StringVar(
		&rootOptions.EnvFile,
		"env-file",
		".env",
		"File with environment defaults",
	)
}
