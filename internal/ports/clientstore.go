package ports

import (
	"clientreg/internal/types"
	"context"
)

// ClientStore holds the client records of one session.
// Records are never removed: ids come from a per-session counter, so they stay
// unique and increasing for the lifetime of the store.
// Implementations MUST return types.ErrNotFound (wrapped or not) when an id matches no record,
// and MUST leave the collection untouched in that case.
type ClientStore interface {
	// Register appends a new active record and returns it. Field contents are not validated.
	Register(ctx context.Context, fields types.ClientFields) (types.ClientRecord, error)

	// List returns every record, inactive ones included, in registration order.
	// The returned slice is a copy.
	List(ctx context.Context) ([]types.ClientRecord, error)

	FindByID(ctx context.Context, id int) (types.ClientRecord, error)

	// Update overwrites the non-empty fields of the record and returns the merged record.
	Update(ctx context.Context, id int, fields types.ClientFields) (types.ClientRecord, error)

	// Deactivate clears the active flag. Deactivating an inactive record succeeds.
	Deactivate(ctx context.Context, id int) (types.ClientRecord, error)

	// ClearAll purges the session. Used on shutdown and in tests.
	ClearAll(ctx context.Context) error
}
