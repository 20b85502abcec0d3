// Package guard marks values that must be built through their constructor.
package guard

import "errors"

// ErrNotConstructed is returned by Validate when no specific error is supplied.
var ErrNotConstructed = errors.New("value must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and value objects so that
// a zero value can be told apart from one built by its New... function.
//
// Example:
//
//	type RecordPaymentCommand struct {
//	    parcelID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c RecordPaymentCommand) Validate() error {
//	    return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns notConstructed (or ErrNotConstructed when nil) if the
// guard is a zero value.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrNotConstructed
	}
	return notConstructed
}
