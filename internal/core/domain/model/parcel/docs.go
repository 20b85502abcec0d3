// Package parcel provides the Parcel aggregate and its two status machines.
//
// The package includes:
//   - Parcel: the aggregate root owning delivery and payment state
//   - DeliveryStatus: created → riders-assigned → in-transit →
//     delivered | delivered_service_center
//   - PaymentStatus: unpaid → paid, once
//
// Key business rules:
//   - a rider can only be assigned to a parcel in created status
//   - delivery status never regresses; invalid moves report
//     errs.ErrTransitionIsInvalid
//   - payment and cashout flags flip at most once; a second attempt reports
//     errs.ErrConflict
//
// Descriptive booking data (title, weight, sender and receiver) is carried as
// an opaque Details value and does not take part in any invariant except that
// weight and cost are not negative.
package parcel
