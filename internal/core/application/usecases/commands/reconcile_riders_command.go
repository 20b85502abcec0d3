package commands

import (
	"errors"

	"parcelhub/internal/pkg/guard"
)

var ErrReconcileRidersCommandIsNotConstructed = errors.New(
	"ReconcileRidersCommand must be created via NewReconcileRidersCommand constructor",
)

// ReconcileRidersCommand scans for riders whose availability disagrees with
// their parcels and, when repair is set, fixes them.
type ReconcileRidersCommand struct {
	repair bool

	guard guard.ConstructorGuard
}

func NewReconcileRidersCommand(repair bool) ReconcileRidersCommand {
	return ReconcileRidersCommand{
		repair: repair,
		guard:  guard.NewConstructorGuard(),
	}
}

func (c ReconcileRidersCommand) Repair() bool { return c.repair }

func (c ReconcileRidersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRidersCommandIsNotConstructed)
}
