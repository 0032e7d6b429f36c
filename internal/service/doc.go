// Package service implements the workflow layer between the HTTP
// handlers and the domain store. It owns the operations that span more
// than one store mutation (recording maintenance with its paired
// expense), enforces the boundary guards the store deliberately leaves
// to callers (mileage regression confirmation), and orchestrates the
// backup codec for export and import.
package service
