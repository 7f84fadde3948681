// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils builds the outbound HTTP clients used by the geocoders.
package httputils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"
)

// TracingTransport writes a short trace of every round trip to Writer.
type TracingTransport struct {
	Transport http.RoundTripper
	Writer    io.Writer
	DumpBody  bool
}

const maxTraceLine = 512

func clip(dump []byte, prefix string) string {
	lines := strings.Split(strings.TrimRight(string(dump), "\r\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(line) > maxTraceLine {
			line = line[:maxTraceLine] + "…"
		}

		lines[i] = prefix + line
	}

	return strings.Join(lines, "\n") + "\n"
}

// RoundTrip implements the http.RoundTripper interface.
func (t *TracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	if t.Writer == nil {
		return next.RoundTrip(req)
	}

	fmt.Fprintf(t.Writer, "> %s %s\n", req.Method, redactQuery(req))

	start := time.Now()

	resp, err := next.RoundTrip(req)
	if err != nil {
		fmt.Fprintf(t.Writer, "< ERROR [%v]: %v\n", time.Since(start).Round(time.Millisecond), err)

		return nil, err
	}

	fmt.Fprintf(t.Writer, "< %s [%v]\n", resp.Status, time.Since(start).Round(time.Millisecond))

	if t.DumpBody {
		dump, err := httputil.DumpResponse(resp, true)
		if err != nil {
			return nil, fmt.Errorf("tracing HTTP response: %w", err)
		}

		fmt.Fprint(t.Writer, clip(dump, "< "))
	}

	return resp, nil
}

// redactQuery hides the api key of google requests.
func redactQuery(req *http.Request) string {
	u := *req.URL

	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// HeaderTransport sets fixed headers on every request.
type HeaderTransport struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	if len(t.Headers) > 0 {
		req = req.Clone(req.Context())
		for k, v := range t.Headers {
			req.Header.Set(k, v)
		}
	}

	return next.RoundTrip(req)
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	Timeout   time.Duration
	Transport http.RoundTripper
	UserAgent string
	Trace     io.Writer
	TraceBody bool
}

// NewClient returns an *http.Client with a whole-request timeout and the
// optional user agent and tracing layers.
func NewClient(opts ClientOptions) *http.Client {
	var rt http.RoundTripper = opts.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	if opts.UserAgent != "" {
		rt = &HeaderTransport{Transport: rt, Headers: map[string]string{"User-Agent": opts.UserAgent}}
	}

	if opts.Trace != nil {
		rt = &TracingTransport{Transport: rt, Writer: opts.Trace, DumpBody: opts.TraceBody}
	}

	return &http.Client{Timeout: opts.Timeout, Transport: rt}
}
