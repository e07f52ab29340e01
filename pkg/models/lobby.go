package models

import "time"

// LobbyStatus defines the possible states of a lobby.
type LobbyStatus string

const (
	LobbyWaiting   LobbyStatus = "waiting"
	LobbyReady     LobbyStatus = "ready"
	LobbyStarted   LobbyStatus = "started"
	LobbyCancelled LobbyStatus = "cancelled"
	LobbyExpired   LobbyStatus = "expired"
)

// Terminal reports whether no further transitions may leave the status.
func (s LobbyStatus) Terminal() bool {
	return s == LobbyStarted || s == LobbyCancelled || s == LobbyExpired
}

// LobbyVisibility controls whether a lobby shows up in the public browser.
type LobbyVisibility string

const (
	LobbyPrivate LobbyVisibility = "private"
	LobbyPublic  LobbyVisibility = "public"
)

// NFTSelection is one side's chosen fighter. Stats here are a preview taken
// at selection time; the authoritative snapshot is re-read at promotion.
type NFTSelection struct {
	Collection string     `dynamodbav:"collection"`
	Item       string     `dynamodbav:"item"`
	Ready      bool       `dynamodbav:"ready"`
	Stats      *StatBlock `dynamodbav:"stats,omitempty"`
	SelectedAt time.Time  `dynamodbav:"selected_at"`
}

// SameNFT reports whether the other selection refers to the same fighter.
func (s *NFTSelection) SameNFT(collection, item string) bool {
	return s != nil && s.Collection == collection && s.Item == item
}

// Lobby is the matchmaking record. The code is a short human-shareable ID.
type Lobby struct {
	Code             string          `dynamodbav:"code"`
	CreatorAddress   string          `dynamodbav:"creator_address"`
	JoinerAddress    string          `dynamodbav:"joiner_address,omitempty"`
	Status           LobbyStatus     `dynamodbav:"status"`
	Visibility       LobbyVisibility `dynamodbav:"visibility"`
	CreatorSelection *NFTSelection   `dynamodbav:"creator_selection,omitempty"`
	JoinerSelection  *NFTSelection   `dynamodbav:"joiner_selection,omitempty"`
	BattleID         string          `dynamodbav:"battle_id,omitempty"`
	ExpiresAt        time.Time       `dynamodbav:"expires_at"`
	LastActivity     time.Time       `dynamodbav:"last_activity"`
	Version          int64           `dynamodbav:"version"`
	CreatedAt        time.Time       `dynamodbav:"created_at"`
	TTL              int64           `dynamodbav:"ttl,omitempty"`
}

// Member reports whether the address occupies one of the lobby's two slots.
func (l *Lobby) Member(addr string) bool {
	return addr == l.CreatorAddress || (l.JoinerAddress != "" && addr == l.JoinerAddress)
}

// SelectionFor returns the selection slot for a member address.
func (l *Lobby) SelectionFor(addr string) *NFTSelection {
	if addr == l.CreatorAddress {
		return l.CreatorSelection
	}
	if l.JoinerAddress != "" && addr == l.JoinerAddress {
		return l.JoinerSelection
	}
	return nil
}

// ExpiredAt reports whether the lobby is past its TTL at the given instant.
// Expiry is lazy: readers and writers apply it, no background sweep does.
func (l *Lobby) ExpiredAt(now time.Time) bool {
	return (l.Status == LobbyWaiting || l.Status == LobbyReady) && now.After(l.ExpiresAt)
}

// DeriveLobbyStatus computes the waiting/ready status from the selections.
// It is evaluated after every selection write; the promotion rule depends on
// its result, so it lives here as a pure function.
func DeriveLobbyStatus(l *Lobby) LobbyStatus {
	if l.Status != LobbyWaiting && l.Status != LobbyReady {
		return l.Status
	}
	if l.JoinerAddress != "" &&
		l.CreatorSelection != nil && l.CreatorSelection.Ready &&
		l.JoinerSelection != nil && l.JoinerSelection.Ready {
		return LobbyReady
	}
	return LobbyWaiting
}
