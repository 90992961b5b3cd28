// Package httpserver builds the process's HTTP server.
package httpserver

import (
	"net/http"
	"time"
)

// New returns the server for the admin API. Header reads are bounded so an
// idle connection cannot pin a goroutine; body reads stay unbounded because
// payment-proof uploads stream multi-megabyte bodies at client pace.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
