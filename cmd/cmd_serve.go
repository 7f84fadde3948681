// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcodagnone/schoolfinder/schools"
	"github.com/jcodagnone/schoolfinder/server"
	"github.com/spf13/cobra"
)

var serveOptions struct {
	Addr string
}

// listenAddr applies PORT when --addr was not given.
func listenAddr(cmd *cobra.Command) string {
	if cmd.Flags().Changed("addr") {
		return serveOptions.Addr
	}

	if port := os.Getenv("PORT"); port != "" {
		return net.JoinHostPort("0.0.0.0", port)
	}

	return serveOptions.Addr
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the search form and the JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		method, err := rootOptions.distanceMethod()
		if err != nil {
			return err
		}

		fmt.Println("📚 Loading schools from", rootOptions.DataPath)

		table, err := schools.Load(cmd.Context(), rootOptions.DataPath)
		if err != nil {
			return err
		}

		geocoder, err := rootOptions.newGeocoder(cmd.Context())
		if err != nil {
			return fmt.Errorf("building geocoder: %w", err)
		}

		fmt.Printf("📍 Geocoding: %s (timeout %v)\n", rootOptions.Geocoder, rootOptions.GeocodeTimeout)
		fmt.Printf("📏 Distances: %s\n", method)

		searcher := schools.NewSearcher(table, geocoder, rootOptions.GeocodeTimeout)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := listenAddr(cmd)
		fmt.Printf("🚀 Listening on http://%s\n", addr)

		return server.NewServer(searcher, method).Run(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(
		&serveOptions.Addr,
		"addr",
		"0.0.0.0:5000",
		"Listen address (env PORT sets the port)",
	)
}
