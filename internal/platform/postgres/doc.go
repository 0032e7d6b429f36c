// Package postgres provides the PostgreSQL-backed implementation of the
// snapshot Persister defined in the internal/store package: the whole
// state document lives as a single JSON blob in one row of the app_state
// table. It handles the details of query execution and of mapping
// database errors to store errors so driver internals never leak.
package postgres
