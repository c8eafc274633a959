package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
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

func TestEnsureProfile_Upserts(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_profiles (id, role) VALUES ($1, $2)")).
		WithArgs("u1", model.RoleCustomer).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "loyalty_points", "role", "updated_at"}).
			AddRow("u1", nil, 0, model.RoleCustomer, time.Now()))

	p, err := repo.EnsureProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Nil(t, p.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLoyaltyPoints_Accumulates(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("loyalty_points = user_profiles.loyalty_points + EXCLUDED.loyalty_points")).
		WithArgs("u1", 12, model.RoleCustomer).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddLoyaltyPoints(context.Background(), "u1", 12))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFullName_LeavesPointsAndRole(t *testing.T) {
	repo, mock := newMockRepo(t)
	name := "Ada"
	mock.ExpectQuery(`UPDATE user_profiles\s+SET full_name = \$2, updated_at = NOW\(\)\s+WHERE id = \$1`).
		WithArgs("u1", "Ada").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "loyalty_points", "role", "updated_at"}).
			AddRow("u1", "Ada", 75, model.RoleAdmin, time.Now()))

	p, err := repo.UpdateFullName(context.Background(), "u1", &name)
	require.NoError(t, err)
	assert.Equal(t, 75, p.LoyaltyPoints)
	assert.Equal(t, model.RoleAdmin, p.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCustomer_SetsSuppliedColumnsOnly(t *testing.T) {
	repo, mock := newMockRepo(t)
	role := model.RoleAdmin
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE user_profiles SET role = $2, updated_at = NOW() WHERE id = $1")).
		WithArgs("u1", role).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "loyalty_points", "role", "updated_at"}).
			AddRow("u1", nil, 90, role, time.Now()))

	p, err := repo.UpdateCustomer(context.Background(), &dto.UpdateCustomerInput{ID: "u1", Role: &role})
	require.NoError(t, err)
	assert.Equal(t, 90, p.LoyaltyPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCustomer_MissingProfile(t *testing.T) {
	repo, mock := newMockRepo(t)
	points := 10
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE user_profiles SET loyalty_points = $2, updated_at = NOW() WHERE id = $1")).
		WithArgs("ghost", points).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "loyalty_points", "role", "updated_at"}))

	p, err := repo.UpdateCustomer(context.Background(), &dto.UpdateCustomerInput{ID: "ghost", LoyaltyPoints: &points})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteAddress_ScopedToOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_addresses WHERE id = $1 AND user_id = $2")).
		WithArgs("a1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DeleteAddress(context.Background(), "u2", "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindCustomers(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM user_profiles p WHERE p.full_name ILIKE $1 OR p.id ILIKE $2")).
		WithArgs("%ada%", "%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectPrepare(regexp.QuoteMeta("LEFT JOIN orders o ON o.user_id = p.id")).
		ExpectQuery().
		WithArgs("%ada%", "%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "loyalty_points", "role", "updated_at", "order_count", "total_spent_pence"}).
			AddRow("u1", "Ada", 40, model.RoleCustomer, time.Now(), 3, 9900))

	customers, total, err := repo.FindCustomers(context.Background(), &dto.CustomerFilters{Search: "ada", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, customers, 1)
	assert.Equal(t, 3, customers[0].OrderCount)
	assert.Equal(t, int64(9900), customers[0].TotalSpentPence)
	assert.Equal(t, 40, customers[0].LoyaltyPoints)
}
