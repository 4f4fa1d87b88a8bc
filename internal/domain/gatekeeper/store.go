package gatekeeper

import (
	"context"
	"errors"
)

// ErrGatekeeperNotFound is returned when no gatekeeper has been provisioned.
var ErrGatekeeperNotFound = errors.New("gatekeeper not found")

// Repository persists the single gatekeeper record.
// This interface is defined in the domain to avoid circular imports.
// Implementations: SQLite (prod), in-memory (test).
//
// The store holds at most one gatekeeper (single-user device model); Save
// overwrites the slot.
type Repository interface {
	// NextID returns a fresh gatekeeper ID.
	NextID() ID

	// Save persists the gatekeeper, replacing any previous record.
	Save(ctx context.Context, g *Gatekeeper) error

	// Gatekeeper loads the persisted gatekeeper.
	// Returns ErrGatekeeperNotFound if none has been provisioned.
	Gatekeeper(ctx context.Context) (*Gatekeeper, error)
}
