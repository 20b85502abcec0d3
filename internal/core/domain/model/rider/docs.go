// Package rider provides the Rider aggregate.
//
// A rider is registered as a pending application. An admin approves or
// rejects it; only approved riders can be assigned parcels. Approval and
// availability are separate fields so that "pending approval" is never
// confused with "available for delivery".
package rider
