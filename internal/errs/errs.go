// Package errs defines the error shapes returned to API clients.
//
// Handlers and services return *HTTPError values; the global error handler
// writes them as JSON with a stable code, message and optional field errors.
package errs
