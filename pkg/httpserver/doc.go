// Package httpserver runs an http.Handler until its context is cancelled and
// then shuts it down gracefully. Configuration comes from functional options or
// from the env-tagged Config struct.
package httpserver
