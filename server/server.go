// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the school search over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/schoolfinder/schools"
	"github.com/jcodagnone/schoolfinder/spatial"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server answers search requests against a single Searcher.
type Server struct {
	searcher *schools.Searcher
	method   spatial.Method
}

// NewServer creates a Server. method selects the distance formula for every
// endpoint; each endpoint keeps its own unit and precision.
func NewServer(searcher *schools.Searcher, method spatial.Method) *Server {
	if method == "" {
		method = spatial.Geodesic
	}

	return &Server{searcher: searcher, method: method}
}

func (s *Server) milesPolicy() schools.DistancePolicy {
	return schools.MilesPolicy.WithMethod(s.method)
}

func (s *Server) kilometersPolicy() schools.DistancePolicy {
	return schools.KilometersPolicy.WithMethod(s.method)
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.indexView)
	r.POST("/", s.indexSearch)
	r.POST("/api/search", s.apiSearch)
	r.POST("/api/map", s.apiMap)
	r.POST("/find-schools", s.findSchools)
	r.GET("/healthz", s.healthz)

	return r
}

// Run listens on addr until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Println("Shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}

func (s *Server) healthz(ctx *gin.Context) {
	table := s.searcher.Table()

	ctx.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"schools":        table.Len(),
		"located":        table.Located(),
		"source":         table.Source(),
		"loaded_at":      table.LoadedAt().UTC().Format(time.RFC3339),
		"schema_version": schools.SchemaVersion,
	})
}
