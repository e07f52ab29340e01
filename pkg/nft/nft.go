package nft

import (
	"context"
	"errors"

	"github.com/nftarena/battle-coordinator/pkg/models"
)

// ErrStatsUnavailable is returned when the stat service cannot supply a
// stat block for the requested NFT.
var ErrStatsUnavailable = errors.New("nft stats unavailable")

// StatProvider supplies frozen stat blocks for NFTs. Selection uses it for
// a preview; promotion re-reads authoritatively so a stale preview can
// never leak into a battle snapshot.
type StatProvider interface {
	GetStats(ctx context.Context, collection, item string) (*models.StatBlock, error)
}
