package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const couponColumns = "id, code, discount_percentage, used, used_at, user_id, created_at"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
        INSERT INTO coupon_codes (id, code, discount_percentage, used, used_at, user_id, created_at)
        VALUES (:id, :code, :discount_percentage, :used, :used_at, :user_id, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	query := `SELECT ` + couponColumns + ` FROM coupon_codes WHERE code = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &c, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CouponFilters) ([]model.Coupon, int, error) {
	coupons := []model.Coupon{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}
	if f.Used != nil {
		conditions = append(conditions, "used = :used")
		args["used"] = *f.Used
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM coupon_codes"+whereClause, args)
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

	query := "SELECT " + couponColumns + " FROM coupon_codes" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &coupons, args)
	return coupons, count, err
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM coupon_codes WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// Upsert never resets the used flag of an existing code.
func (r *PGRepository) Upsert(ctx context.Context, c *model.Coupon) error {
	query := `
        INSERT INTO coupon_codes (id, code, discount_percentage, used, used_at, user_id, created_at)
        VALUES (:id, :code, :discount_percentage, :used, :used_at, :user_id, :created_at)
        ON CONFLICT (code) DO UPDATE
        SET discount_percentage = EXCLUDED.discount_percentage
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) MarkUsed(ctx context.Context, code, userID string, at time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE coupon_codes SET used = TRUE, used_at = $1, user_id = $2
        WHERE code = $3 AND used = FALSE`, at, userID, code)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
