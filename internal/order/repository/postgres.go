package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, user_id, guest_email, subtotal_pence, discount_pence, shipping_pence,
        total_amount_pence, status, shipping_address, points_earned, promo_code,
        payment_provider, payment_reference, created_at, updated_at`

const itemColumns = "id, order_id, product_id, variation_id, name, quantity, price_pence"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateWithItems(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orderQuery := `
        INSERT INTO orders (id, user_id, guest_email, subtotal_pence, discount_pence, shipping_pence,
            total_amount_pence, status, shipping_address, points_earned, promo_code,
            payment_provider, payment_reference, created_at, updated_at)
        VALUES (:id, :user_id, :guest_email, :subtotal_pence, :discount_pence, :shipping_pence,
            :total_amount_pence, :status, :shipping_address, :points_earned, :promo_code,
            :payment_provider, :payment_reference, :created_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, orderQuery, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (id, order_id, product_id, variation_id, name, quantity, price_pence)
        VALUES (:id, :order_id, :product_id, :variation_id, :name, :quantity, :price_pence)
    `
	for i := range o.Items {
		if _, err := tx.NamedExecContext(ctx, itemQuery, &o.Items[i]); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Order, error) {
	var o model.Order
	if err := r.DB.GetContext(ctx, &o, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *PGRepository) FindByPaymentReference(ctx context.Context, provider, reference string) (*model.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_provider = $1 AND payment_reference = $2`,
		provider, reference)
}

func (r *PGRepository) FindItems(ctx context.Context, orderIDs []string) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	if len(orderIDs) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(`SELECT `+itemColumns+` FROM order_items WHERE order_id IN (?) ORDER BY order_id, name`, orderIDs)
	if err != nil {
		return nil, err
	}
	err = r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...)
	return items, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	orders := []model.Order{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}
	if f.UserID != nil {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = *f.UserID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM orders"+whereClause, args)
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

	query := "SELECT " + orderColumns + " FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &orders, args)
	return orders, count, err
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	return affected(r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id))
}

func (r *PGRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	return affected(r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		model.OrderStatusPaid, id, model.OrderStatusPending))
}

func (r *PGRepository) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	var stats dto.DashboardStats
	query := `
        SELECT
            (SELECT count(*) FROM orders) AS total_orders,
            (SELECT count(*) FROM orders WHERE status = $1) AS pending_orders,
            (SELECT count(*) FROM user_profiles) AS total_customers,
            (SELECT count(*) FROM products) AS total_products,
            (SELECT COALESCE(SUM(total_amount_pence), 0) FROM orders WHERE status <> $2) AS total_revenue_pence
    `
	if err := r.DB.GetContext(ctx, &stats, query, model.OrderStatusPending, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	return &stats, nil
}
