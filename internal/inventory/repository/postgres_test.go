package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestDecrementForOrder_CollectsShortfalls(t *testing.T) {
	repo, mock := newMockRepo(t)
	variation := "v-50g"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET stock_quantity = stock_quantity - $1")).
		WithArgs(2, "sencha").
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(8))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stock_movements")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE product_variations SET stock_quantity = stock_quantity - $1")).
		WithArgs(5, variation).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock_quantity FROM product_variations WHERE id = $1 AND product_id = $2")).
		WithArgs(variation, "matcha").
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(1))
	mock.ExpectCommit()

	shortfalls, err := repo.DecrementForOrder(context.Background(), "order-1", []dto.StockLine{
		{ProductID: "sencha", Quantity: 2},
		{ProductID: "matcha", VariationID: &variation, Quantity: 5},
	})
	require.NoError(t, err)
	require.Len(t, shortfalls, 1)
	assert.Equal(t, "matcha", shortfalls[0].ProductID)
	assert.Equal(t, 1, shortfalls[0].Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStockWithMovement_DetectsConcurrentChange(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET stock_quantity = $1")).
		WithArgs(7, "chai", 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.AdjustStockWithMovement(context.Background(), &model.StockMovement{
		ID: "m1", ProductID: "chai", QuantityChange: 2, QuantityBefore: 5, QuantityAfter: 7,
	})
	assert.ErrorIs(t, err, inventory.ErrStockChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStock_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock_quantity FROM products WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))

	_, found, err := repo.GetStock(context.Background(), "ghost", nil)
	require.NoError(t, err)
	assert.False(t, found)
}
