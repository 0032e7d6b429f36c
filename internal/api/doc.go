// Package api provides the HTTP handlers for the garage API. Handlers
// are thin: they decode and validate requests, call into the service
// layer, and map the outcome onto JSON responses and status codes
// without leaking internal error details to clients.
package api
