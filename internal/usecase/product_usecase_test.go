package usecase

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductTestEnv() (*ProductUsecase, *ProductRepoMock, *CategoryRepoMock, *InventoryRepoMock) {
	products := new(ProductRepoMock)
	categories := new(CategoryRepoMock)
	inventory := new(InventoryRepoMock)

	//SetStockはトランザクション内で同じモックを使う
	tx := &TxManagerMock{Repos: &TxReposMock{products: products, inventory: inventory}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	return NewProductUsecase(tx, products, categories), products, categories, inventory
}

func TestProductUsecase_List_InvalidSort(t *testing.T) {
	uc, products, _, _ := newProductTestEnv()

	_, err := uc.List(context.Background(), repo.ProductListQuery{Sort: "rating"})

	assertErrContains(t, err, "invalid sort")
	products.AssertNotCalled(t, "ListPublic", mock.Anything, mock.Anything)
}

func TestProductUsecase_List_DefaultsPageAndLimit(t *testing.T) {
	uc, products, _, _ := newProductTestEnv()

	products.On("ListPublic", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Page == 1 && q.Limit == 20
	})).Return([]model.Product{{ID: 10, Name: "keyboard", Price: 1500}}, int64(1), nil)

	out, err := uc.List(context.Background(), repo.ProductListQuery{Page: 0, Limit: 0})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

func TestProductUsecase_Get_NotFound(t *testing.T) {
	uc, products, _, _ := newProductTestEnv()

	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Get(context.Background(), 10)

	assertErrContains(t, err, "product not found")
	he, ok := AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, 404, he.Status)
	}
}

func TestProductUsecase_Create_UnknownCategory(t *testing.T) {
	uc, products, categories, _ := newProductTestEnv()

	categories.On("FindByID", mock.Anything, int64(5)).Return(model.Category{}, repo.ErrNotFound)

	_, err := uc.Create(context.Background(), ProductInput{
		CategoryID: 5, Name: "keyboard", Price: 1500, Stock: 10,
	})

	assertErrContains(t, err, "category not found")
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_Create_Success(t *testing.T) {
	uc, products, categories, _ := newProductTestEnv()

	categories.On("FindByID", mock.Anything, int64(5)).Return(model.Category{ID: 5, Name: "devices"}, nil)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.CategoryID == 5 && p.Name == "keyboard" && p.Stock == 10
	})).Return(model.Product{ID: 10, CategoryID: 5, Name: "keyboard", Price: 1500, Stock: 10}, nil)

	out, err := uc.Create(context.Background(), ProductInput{
		CategoryID: 5, Name: "keyboard", Price: 1500, Stock: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
}

func TestProductUsecase_SetStock_Negative(t *testing.T) {
	uc, _, _, inventory := newProductTestEnv()

	_, err := uc.SetStock(context.Background(), 1, 10, -1, "typo fix")

	assertErrContains(t, err, "stock must not be negative")
	inventory.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductUsecase_SetStock_RecordsAdjustmentDelta(t *testing.T) {
	uc, products, _, inventory := newProductTestEnv()

	products.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(model.Product{ID: 10, Name: "keyboard", Stock: 5}, nil)
	inventory.On("SetStock", mock.Anything, int64(10), int64(12)).Return(nil)
	inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		//5→12なので差分は+7
		return a.ProductID == 10 && a.AdminUserID == 1 && a.Delta == 7
	})).Return(nil)

	out, err := uc.SetStock(context.Background(), 1, 10, 12, "restock")

	assert.NoError(t, err)
	assert.Equal(t, int64(12), out.Stock)
	inventory.AssertCalled(t, "CreateAdjustment", mock.Anything, mock.Anything)
}

func TestProductUsecase_SetStock_AdjustmentFailureAbortsTx(t *testing.T) {
	uc, products, _, inventory := newProductTestEnv()

	products.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(model.Product{ID: 10, Name: "keyboard", Stock: 5}, nil)
	inventory.On("SetStock", mock.Anything, int64(10), int64(12)).Return(nil)
	inventory.On("CreateAdjustment", mock.Anything, mock.Anything).Return(assert.AnError)

	//履歴が書けなければ全体が失敗し、在庫の書き換えだけが残ることはない
	//（同一トランザクション内なのでロールバックされる）
	_, err := uc.SetStock(context.Background(), 1, 10, 12, "restock")

	assertErrContains(t, err, "db error")
	uc.tx.(*TxManagerMock).AssertCalled(t, "WithinTx", mock.Anything)
}
