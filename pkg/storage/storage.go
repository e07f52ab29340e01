package storage

// Storage defines the root interface for the entire data layer.
// Components should depend on the more granular interfaces (ApiStore,
// WatchdogStore, etc.) instead of this one.
type Storage interface {
	ApiStore
	WebSocketManager
}

// WatchdogStore defines the minimal surface the turn watchdog needs.
type WatchdogStore interface {
	BattleReader
	TurnExecutor
}
