package repository

import (
	"context"

	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users       repo.UserRepository
	carts       repo.CartRepository
	orderItems  repo.OrderItemRepository
	orders      repo.OrderRepository
	products    repo.ProductRepository
	inventory   repo.InventoryRepository
	addresses   repo.AddressRepository
	payments    repo.PaymentRepository
	creditCards repo.CreditCardRepository
}

func (r *txReposGorm) Users() repo.UserRepository             { return r.users }
func (r *txReposGorm) Carts() repo.CartRepository             { return r.carts }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *txReposGorm) Orders() repo.OrderRepository           { return r.orders }
func (r *txReposGorm) Products() repo.ProductRepository       { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository    { return r.inventory }
func (r *txReposGorm) Addresses() repo.AddressRepository      { return r.addresses }
func (r *txReposGorm) Payments() repo.PaymentRepository       { return r.payments }
func (r *txReposGorm) CreditCards() repo.CreditCardRepository { return r.creditCards }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnの中でerrorを返せば全部ロールバック。ctxのキャンセルでも同様
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:       NewUserGormRepository(tx),
			carts:       NewCartGormRepository(tx),
			orderItems:  NewOrderItemGormRepository(tx),
			orders:      NewOrderGormRepository(tx),
			products:    NewProductGormRepository(tx),
			inventory:   NewInventoryGormRepository(tx),
			addresses:   NewAddressGormRepository(tx),
			payments:    NewPaymentGormRepository(tx),
			creditCards: NewCreditCardGormRepository(tx),
		}
		return fn(r)
	})
}
