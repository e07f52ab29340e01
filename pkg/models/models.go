package models

import (
	"strings"
	"time"
)

// Account represents a player account keyed by its primary (in-game) address.
// The secondary address is the identity the battle contract recognizes; it is
// linked at most once at a time and stored lowercased.
type Account struct {
	PrimaryAddress   string     `dynamodbav:"primary_address"`
	SecondaryAddress string     `dynamodbav:"secondary_address,omitempty"`
	LinkedAt         *time.Time `dynamodbav:"linked_at,omitempty"`
	Balance          int64      `dynamodbav:"balance"`
	Version          int64      `dynamodbav:"version"`
	CreatedAt        time.Time  `dynamodbav:"created_at"`
	UpdatedAt        time.Time  `dynamodbav:"updated_at"`
}

// Linked reports whether the account has a secondary address on file.
func (a *Account) Linked() bool {
	return a.SecondaryAddress != ""
}

// NormalizeAddress canonicalizes a contract-side address for storage and
// comparison. Ledger events report addresses in mixed case.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// StatBlock is a frozen snapshot of an NFT's combat stats. Battles copy the
// block at promotion time; it is never re-derived mid-battle.
type StatBlock struct {
	Attack       int64  `json:"attack" dynamodbav:"attack"`
	Defense      int64  `json:"defense" dynamodbav:"defense"`
	Intelligence int64  `json:"intelligence" dynamodbav:"intelligence"`
	Luck         int64  `json:"luck" dynamodbav:"luck"`
	Speed        int64  `json:"speed" dynamodbav:"speed"`
	Strength     int64  `json:"strength" dynamodbav:"strength"`
	MaxHealth    int64  `json:"max_health" dynamodbav:"max_health"`
	NFTType      string `json:"nft_type" dynamodbav:"nft_type"`
}

// CreditEntry is a single append-only entry in the reward ledger.
type CreditEntry struct {
	EntryID     string    `dynamodbav:"entry_id"`
	BattleID    string    `dynamodbav:"battle_id"`
	AccountID   string    `dynamodbav:"account_id"`
	Credit      int64     `dynamodbav:"credit"`
	Description string    `dynamodbav:"description"`
	Timestamp   time.Time `dynamodbav:"timestamp"`
	GSI1PK      string    `dynamodbav:"gsi1pk"`
}

// WinReward is the fixed credit awarded to a battle winner.
const WinReward int64 = 200
