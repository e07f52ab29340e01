package storage

import (
	"context"

	"github.com/nftarena/battle-coordinator/pkg/models"
)

// CreditReader defines the interface for reading the reward ledger.
type CreditReader interface {
	// ListCreditEntries retrieves the most recent credit entries.
	ListCreditEntries(ctx context.Context, limit int32) ([]models.CreditEntry, error)
}
