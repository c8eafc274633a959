package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	profileColumns = "id, full_name, loyalty_points, role, updated_at"
	addressColumns = "id, user_id, address_line1, address_line2, city, postcode, country, created_at"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var p model.UserProfile
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = $1`
	if err := r.DB.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) EnsureProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var p model.UserProfile
	query := `
        INSERT INTO user_profiles (id, role) VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
        RETURNING ` + profileColumns
	if err := r.DB.GetContext(ctx, &p, query, userID, model.RoleCustomer); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateFullName only touches the name so concurrent loyalty credits and
// role changes are never overwritten.
func (r *PGRepository) UpdateFullName(ctx context.Context, userID string, fullName *string) (*model.UserProfile, error) {
	var p model.UserProfile
	query := `
        UPDATE user_profiles
        SET full_name = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + profileColumns
	if err := r.DB.GetContext(ctx, &p, query, userID, fullName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// UpdateCustomer writes only the supplied fields. A missing profile returns nil.
func (r *PGRepository) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.UserProfile, error) {
	sets := []string{}
	args := []interface{}{input.ID}
	if input.FullName != nil {
		args = append(args, *input.FullName)
		sets = append(sets, fmt.Sprintf("full_name = $%d", len(args)))
	}
	if input.LoyaltyPoints != nil {
		args = append(args, *input.LoyaltyPoints)
		sets = append(sets, fmt.Sprintf("loyalty_points = $%d", len(args)))
	}
	if input.Role != nil {
		args = append(args, *input.Role)
		sets = append(sets, fmt.Sprintf("role = $%d", len(args)))
	}
	if len(sets) == 0 {
		return r.FindProfile(ctx, input.ID)
	}
	sets = append(sets, "updated_at = NOW()")

	var p model.UserProfile
	query := `UPDATE user_profiles SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + profileColumns
	if err := r.DB.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// AddLoyaltyPoints creates the profile when the customer has none yet.
func (r *PGRepository) AddLoyaltyPoints(ctx context.Context, userID string, points int) error {
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO user_profiles (id, loyalty_points, role) VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE
        SET loyalty_points = user_profiles.loyalty_points + EXCLUDED.loyalty_points, updated_at = NOW()`,
		userID, points, model.RoleCustomer)
	return err
}

func (r *PGRepository) ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error) {
	addresses := []model.UserAddress{}
	query := `SELECT ` + addressColumns + ` FROM user_addresses WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.DB.SelectContext(ctx, &addresses, query, userID)
	return addresses, err
}

func (r *PGRepository) FindAddress(ctx context.Context, userID, id string) (*model.UserAddress, error) {
	var a model.UserAddress
	query := `SELECT ` + addressColumns + ` FROM user_addresses WHERE id = $1 AND user_id = $2`
	if err := r.DB.GetContext(ctx, &a, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) CreateAddress(ctx context.Context, a *model.UserAddress) error {
	query := `
        INSERT INTO user_addresses (id, user_id, address_line1, address_line2, city, postcode, country, created_at)
        VALUES (:id, :user_id, :address_line1, :address_line2, :city, :postcode, :country, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) UpdateAddress(ctx context.Context, a *model.UserAddress) (bool, error) {
	query := `
        UPDATE user_addresses
        SET address_line1 = :address_line1, address_line2 = :address_line2, city = :city,
            postcode = :postcode, country = :country
        WHERE id = :id AND user_id = :user_id
    `
	res, err := r.DB.NamedExecContext(ctx, query, a)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *PGRepository) DeleteAddress(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM user_addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *PGRepository) FindCustomers(ctx context.Context, f *dto.CustomerFilters) ([]dto.Customer, int, error) {
	customers := []dto.Customer{}
	var count int

	whereClause := ""
	args := map[string]interface{}{}
	if f.Search != "" {
		whereClause = " WHERE p.full_name ILIKE :search OR p.id ILIKE :search"
		args["search"] = "%" + f.Search + "%"
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM user_profiles p"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	query := `
        SELECT p.id, p.full_name, p.loyalty_points, p.role, p.updated_at,
            COUNT(o.id) AS order_count,
            COALESCE(SUM(o.total_amount_pence) FILTER (WHERE o.status <> 'Cancelled'), 0) AS total_spent_pence
        FROM user_profiles p
        LEFT JOIN orders o ON o.user_id = p.id` + whereClause + `
        GROUP BY p.id
        ORDER BY p.updated_at DESC`
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &customers, args)
	return customers, count, err
}
