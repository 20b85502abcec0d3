// Package kernel provides the primitives shared by every aggregate of the
// parcel domain.
//
// The package includes:
//   - UUID: the identifier value object for users, parcels, riders, payments
//     and tracking events
//   - Clock: the time source injected into use cases so that stamped fields
//     (pickedAt, deliveredAt, paidAt, cashoutTime) are deterministic in tests
//
// Malformed identifiers coming from clients are reported as
// errs.ErrValueIsInvalid, which the HTTP adapter maps to 400 before any
// lookup is attempted.
package kernel
