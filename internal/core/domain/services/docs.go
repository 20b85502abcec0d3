// Package services provides domain services that coordinate several
// aggregates of the parcel domain.
//
// The package includes:
//   - RiderDispatcher: binds a rider to a parcel all-or-nothing, ranks
//     candidate riders by district and decides when a rider goes idle
package services
