package repository

import "context"

// TransactionManager runs use case logic inside one database transaction.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise. Repositories
	// taken from the factory share the transaction; use only those inside fn.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	ProductRepo() ProductRepository
	CategoryRepo() CategoryRepository
	ReviewRepo() ReviewRepository
	WishlistRepo() WishlistRepository
	CartRepo() CartRepository
	CheckoutRepo() CheckoutRepository
	OrderRepo() OrderRepository
	PaymentRepo() PaymentRepository
	InventoryRepo() InventoryRepository
}
