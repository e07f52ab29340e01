// Package mapping converts between domain models and API types.
package mapping

import (
	"github.com/nftarena/battle-coordinator/pkg/api"
	"github.com/nftarena/battle-coordinator/pkg/chain"
	"github.com/nftarena/battle-coordinator/pkg/models"
)

// ToApiAccount converts a domain account to its API representation.
func ToApiAccount(a *models.Account) *api.Account {
	out := &api.Account{
		PrimaryAddress: a.PrimaryAddress,
		Balance:        a.Balance,
		CreatedAt:      a.CreatedAt,
		LinkedAt:       a.LinkedAt,
	}
	if a.SecondaryAddress != "" {
		secondary := a.SecondaryAddress
		out.SecondaryAddress = &secondary
	}
	return out
}

// ToApiStatBlock converts a domain stat block to its API representation.
func ToApiStatBlock(s models.StatBlock) api.StatBlock {
	return api.StatBlock{
		Attack:       s.Attack,
		Defense:      s.Defense,
		Intelligence: s.Intelligence,
		Luck:         s.Luck,
		Speed:        s.Speed,
		Strength:     s.Strength,
		MaxHealth:    s.MaxHealth,
		NFTType:      s.NFTType,
	}
}

func toApiSelection(s *models.NFTSelection) *api.NFTSelection {
	if s == nil {
		return nil
	}
	out := &api.NFTSelection{
		Collection: s.Collection,
		Item:       s.Item,
		Ready:      s.Ready,
	}
	if s.Stats != nil {
		stats := ToApiStatBlock(*s.Stats)
		out.Stats = &stats
	}
	return out
}

// ToApiLobby converts a domain lobby to its API representation.
func ToApiLobby(l *models.Lobby) *api.Lobby {
	out := &api.Lobby{
		Code:             l.Code,
		CreatorAddress:   l.CreatorAddress,
		Status:           string(l.Status),
		Visibility:       string(l.Visibility),
		CreatorSelection: toApiSelection(l.CreatorSelection),
		JoinerSelection:  toApiSelection(l.JoinerSelection),
		ExpiresAt:        l.ExpiresAt,
		CreatedAt:        l.CreatedAt,
	}
	if l.JoinerAddress != "" {
		joiner := l.JoinerAddress
		out.JoinerAddress = &joiner
	}
	if l.BattleID != "" {
		battleID := l.BattleID
		out.BattleID = &battleID
	}
	return out
}

// ToApiBattle converts a domain battle to its API representation. The
// secondary-address snapshots are deliberately not exposed.
func ToApiBattle(b *models.Battle) *api.Battle {
	out := &api.Battle{
		ID:               b.ID,
		Player1Address:   b.Player1Address,
		Player2Address:   b.Player2Address,
		Player1Stats:     ToApiStatBlock(b.Player1Stats),
		Player2Stats:     ToApiStatBlock(b.Player2Stats),
		CurrentTurn:      b.CurrentTurn,
		Player1Health:    b.Player1Health,
		Player2Health:    b.Player2Health,
		Player1MaxHealth: b.Player1MaxHealth,
		Player2MaxHealth: b.Player2MaxHealth,
		TurnNumber:       b.TurnNumber,
		Status:           string(b.Status),
		Moves:            make([]api.Move, len(b.Moves)),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if b.ExternalBattleID != "" {
		externalID := b.ExternalBattleID
		out.ExternalBattleID = &externalID
	}
	if b.Winner != "" {
		winner := b.Winner
		out.Winner = &winner
	}
	if b.PendingTurn != nil {
		out.PendingTurn = &api.PendingTurn{
			Player:      b.PendingTurn.Player,
			Action:      b.PendingTurn.Action,
			SubmittedAt: b.PendingTurn.SubmittedAt,
		}
	}
	for i, m := range b.Moves {
		out.Moves[i] = api.Move{
			TurnNumber:      m.TurnNumber,
			Player:          m.Player,
			Action:          m.Action,
			Damage:          m.Damage,
			WasCritical:     m.WasCritical,
			ResultingHealth: m.ResultingHealth,
			TxRef:           m.TxRef,
			Timestamp:       m.Timestamp,
		}
	}
	return out
}

// ToApiCreditEntry converts a reward-ledger entry to its API representation.
func ToApiCreditEntry(e *models.CreditEntry) *api.CreditEntry {
	return &api.CreditEntry{
		EntryID:     e.EntryID,
		BattleID:    e.BattleID,
		AccountID:   e.AccountID,
		Credit:      e.Credit,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
}

// ToChainTurnResult converts a posted turn result to the ledger type the
// storage layer reconciles against.
func ToChainTurnResult(r *api.TurnResult) *chain.TurnResult {
	return &chain.TurnResult{
		Player1Health:         r.Player1Health,
		Player2Health:         r.Player2Health,
		TurnCount:             r.TurnCount,
		IsOver:                r.IsOver,
		WinnerSecondaryAddr:   r.WinnerSecondaryAddr,
		NextTurnSecondaryAddr: r.NextTurnSecondaryAddr,
		Damage:                r.Damage,
		WasCritical:           r.WasCritical,
	}
}
