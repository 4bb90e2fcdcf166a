package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	Carts() CartRepository
	OrderItems() OrderItemRepository
	Orders() OrderRepository
	Products() ProductRepository
	Inventory() InventoryRepository
	Addresses() AddressRepository
	Payments() PaymentRepository
	CreditCards() CreditCardRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
