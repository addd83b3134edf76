package inventory

import (
	"context"

	"github.com/clinisupply/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory
// repositories. A movement and the quantity change it applies to its
// item must commit or roll back together.
type TransactionScope interface {
	// Execute runs fn inside one database transaction. An error from fn
	// rolls the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the inventory repositories bound to
// the current transaction.
type TransactionalRepositories interface {
	Items() inventory.ItemRepository
	Movements() inventory.MovementRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests where the backing repositories are fakes.
type NoOpTransactionScope struct {
	items     inventory.ItemRepository
	movements inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(items inventory.ItemRepository, movements inventory.MovementRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{items: items, movements: movements}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Items returns the item repository
func (s *NoOpTransactionScope) Items() inventory.ItemRepository {
	return s.items
}

// Movements returns the movement repository
func (s *NoOpTransactionScope) Movements() inventory.MovementRepository {
	return s.movements
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
