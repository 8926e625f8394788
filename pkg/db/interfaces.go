package db

import (
	"context"
	"time"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

// PeopleStore defines the interface for person database operations
type PeopleStore interface {
	GetPeople(ctx context.Context) ([]model.Person, error)
	GetPresentPeople(ctx context.Context) ([]model.Person, error)
	SetPresence(ctx context.Context, personIDs []int64, present bool) error
	SetPresenceExcept(ctx context.Context, personIDs []int64, present bool) error
}

// CatalogueStore defines the interface for role and event reference data
type CatalogueStore interface {
	GetRoles(ctx context.Context) ([]model.Role, error)
	GetActiveEvents(ctx context.Context) ([]model.Event, error)
}

// RosterStore defines the interface for roster and assignment operations
type RosterStore interface {
	// GetAssignmentsBetween returns assignment records with event date in
	// the half-open range [from, to).
	GetAssignmentsBetween(ctx context.Context, from, to time.Time) ([]model.AssignmentRecord, error)

	// SaveRoster applies every RosterSave atomically: either all containers
	// end up holding exactly their new rows, or none change.
	SaveRoster(ctx context.Context, saves []RosterSave) error
}
