package storage

import "errors"

// ErrNotFound is returned when a lobby, battle or account does not exist.
var ErrNotFound = errors.New("record not found")

// ErrUnlinked is returned when an operation requires a linked secondary
// address and the account has none on file.
var ErrUnlinked = errors.New("account has no linked secondary address")

// ErrInvalidState is returned when an operation is attempted outside its
// legal lobby or battle state.
var ErrInvalidState = errors.New("operation not allowed in current state")

// ErrNotAMember is returned when the caller occupies neither slot of the lobby or battle.
var ErrNotAMember = errors.New("player is not a member")

// ErrNotYourTurn is returned when a turn is submitted by the wrong player.
var ErrNotYourTurn = errors.New("not your turn")

// ErrSelfJoin is returned when a creator tries to join their own lobby.
var ErrSelfJoin = errors.New("cannot join your own lobby")

// ErrLobbyFull is returned when the joiner slot is already occupied.
var ErrLobbyFull = errors.New("lobby is already full")

// ErrTurnInFlight is returned when a turn submission is already pending.
var ErrTurnInFlight = errors.New("a turn submission is already in flight")

// ErrUnresolvedAddress is returned when a ledger-reported secondary address
// cannot be mapped back to a primary address.
var ErrUnresolvedAddress = errors.New("cannot resolve secondary address")

// ErrIncompleteSelection is returned when promotion runs against a lobby
// missing an NFT selection or ready flag.
var ErrIncompleteSelection = errors.New("both players must select an NFT and ready up")

// ErrDuplicateLobbyCode is returned when a generated lobby code collides.
var ErrDuplicateLobbyCode = errors.New("lobby code already in use")

// ErrStaleVersion is returned when an optimistic version check fails and the
// write could not be attributed to a more specific conflict.
var ErrStaleVersion = errors.New("record was modified concurrently")
