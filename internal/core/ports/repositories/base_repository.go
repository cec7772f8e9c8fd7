package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// WithinTx begins a transaction, calls fn with repositories bound to it and
	// commits when fn returns nil. Any error rolls the whole transaction back and
	// is returned unchanged. Lock and serialization failures are reported as
	// apperrors.ErrConflict.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryProvider) error) error
}

// Store is a complete storage backend.
type Store interface {
	TransactionManager

	// Repositories returns repositories that run outside any transaction. They
	// are meant for reads.
	Repositories() RepositoryProvider

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
