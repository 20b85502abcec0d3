// Package queries contains the read side of the service.
//
// Query handlers read straight from the database with GORM raw SQL and
// return flat response structs. They never load aggregates for writing and
// never open a unit of work.
package queries
