package storage

//go:generate mockery --name Storage --output ./mocks

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on the
// more granular interfaces (LedgerAppender, WorkerReader, etc.) instead of this one.
type Storage interface {
	LedgerStore
	WorkerStore
	OrderStore
	SettingsStore
	RateStore
	RequestStore
	PayoutLockStore
	WebSocketManager
}
