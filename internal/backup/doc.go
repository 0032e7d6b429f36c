// Package backup implements the portable snapshot document used for
// export and import: a versioned JSON file carrying the cars, services,
// and expenses collections, either for the whole store or filtered to a
// single vehicle.
package backup
