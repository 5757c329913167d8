// Package requestid attaches a correlation id to every HTTP request so that the
// log records of one form submission can be grouped.
//
// Middleware reads X-Request-ID from the client, replaces it with a fresh
// UUIDv4 when it is missing or malformed, stores it in the request context and
// echoes it in the response header. FromContext retrieves it downstream.
package requestid
