package storage

import (
	"context"

	"github.com/nftarena/battle-coordinator/pkg/models"
)

// AccountReader defines the interface for reading account links.
type AccountReader interface {
	// GetAccount retrieves an account by primary address.
	GetAccount(ctx context.Context, primary string) (*models.Account, error)

	// ResolvePrimary maps a secondary address back to the primary address it
	// is linked to. Returns ErrNotFound when no link exists.
	ResolvePrimary(ctx context.Context, secondary string) (string, error)
}

// AccountManager defines the interface for creating and linking accounts.
type AccountManager interface {
	// CreateAccount registers an account for a primary address.
	CreateAccount(ctx context.Context, primary string) (*models.Account, error)

	// LinkAccount upserts the primary→secondary mapping. Returns ErrNotFound
	// if no account exists for the primary address.
	LinkAccount(ctx context.Context, primary, secondary string) (*models.Account, error)
}

// AccountStore combines the reader and manager interfaces.
type AccountStore interface {
	AccountReader
	AccountManager
}
