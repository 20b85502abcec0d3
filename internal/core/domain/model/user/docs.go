// Package user holds the User aggregate and the Role enumeration used by the
// access gate.
//
// A user is created the first time an email signs in (idempotent upsert) and
// is never deleted by the core. Its role changes only through an explicit
// admin action or through rider approval, which elevates the matching user
// to RoleRider on a best-effort basis.
package user
