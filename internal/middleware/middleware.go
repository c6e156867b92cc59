// Package middleware holds the global and route-specific echo middleware:
// request ids, request-scoped logging, tracing, metrics, CORS, rate limiting
// and panic recovery, plus the global error handler.
package middleware
