// Package store provides the authoritative domain store for the three
// collections (cars, service records, expenses). It defines the Store
// interface that abstracts the storage mechanism from the application's
// core logic, and an in-memory single-writer implementation that keeps
// each mutation atomic with respect to readers and notifies subscribers
// synchronously after every change.
package store
