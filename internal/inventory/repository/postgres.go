package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const movementColumns = `id, product_id, variation_id, movement_type, quantity_change, quantity_before,
        quantity_after, reason, reference_id, created_by, created_at`

const insertMovementQuery = `
        INSERT INTO stock_movements (
            id, product_id, variation_id, movement_type, quantity_change,
            quantity_before, quantity_after, reason, reference_id, created_by, created_at
        )
        VALUES (
            :id, :product_id, :variation_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reason, :reference_id, :created_by, :created_at
        )
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetStock(ctx context.Context, productID string, variationID *string) (int, bool, error) {
	return getStock(ctx, r.DB, productID, variationID)
}

func getStock(ctx context.Context, q sqlx.QueryerContext, productID string, variationID *string) (int, bool, error) {
	var stock int
	var err error
	if variationID != nil {
		err = sqlx.GetContext(ctx, q, &stock,
			`SELECT stock_quantity FROM product_variations WHERE id = $1 AND product_id = $2`, *variationID, productID)
	} else {
		err = sqlx.GetContext(ctx, q, &stock, `SELECT stock_quantity FROM products WHERE id = $1`, productID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return stock, true, nil
}

func (r *PGRepository) AdjustStockWithMovement(ctx context.Context, m *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Update stock, guarded against writes that bypassed the lock
	var res sql.Result
	if m.VariationID != nil {
		res, err = tx.ExecContext(ctx, `
            UPDATE product_variations SET stock_quantity = $1
            WHERE id = $2 AND product_id = $3 AND stock_quantity = $4`,
			m.QuantityAfter, *m.VariationID, m.ProductID, m.QuantityBefore)
	} else {
		res, err = tx.ExecContext(ctx, `
            UPDATE products SET stock_quantity = $1, updated_at = NOW()
            WHERE id = $2 AND stock_quantity = $3`,
			m.QuantityAfter, m.ProductID, m.QuantityBefore)
	}
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return inventory.ErrStockChanged
	}

	// 2. Log movement
	if _, err := tx.NamedExecContext(ctx, insertMovementQuery, m); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) DecrementForOrder(ctx context.Context, orderID string, lines []dto.StockLine) ([]dto.StockShortfall, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	shortfalls := []dto.StockShortfall{}
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}

		var after int
		if line.VariationID != nil {
			err = tx.QueryRowxContext(ctx, `
                UPDATE product_variations SET stock_quantity = stock_quantity - $1
                WHERE id = $2 AND stock_quantity >= $1
                RETURNING stock_quantity`, line.Quantity, *line.VariationID).Scan(&after)
		} else {
			err = tx.QueryRowxContext(ctx, `
                UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW()
                WHERE id = $2 AND stock_quantity >= $1
                RETURNING stock_quantity`, line.Quantity, line.ProductID).Scan(&after)
		}
		if errors.Is(err, sql.ErrNoRows) {
			available, _, err := getStock(ctx, tx, line.ProductID, line.VariationID)
			if err != nil {
				return nil, err
			}
			shortfalls = append(shortfalls, dto.StockShortfall{StockLine: line, Available: available})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock for %s: %w", line.ProductID, err)
		}

		ref := orderID
		movement := &model.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      line.ProductID,
			VariationID:    line.VariationID,
			MovementType:   model.MovementSale,
			QuantityChange: -line.Quantity,
			QuantityBefore: after + line.Quantity,
			QuantityAfter:  after,
			Reason:         "Order sale",
			ReferenceID:    &ref,
			CreatedAt:      time.Now(),
		}
		if _, err := tx.NamedExecContext(ctx, insertMovementQuery, movement); err != nil {
			return nil, fmt.Errorf("failed to log movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return shortfalls, nil
}

func (r *PGRepository) ListLowStock(ctx context.Context, threshold, page, pageSize int) ([]model.LowStockItem, int, error) {
	items := []model.LowStockItem{}
	var count int

	stockItems := `
        SELECT p.id AS product_id, NULL::text AS variation_id, p.name, NULL::text AS weight, p.sku, p.stock_quantity
        FROM products p
        WHERE p.is_active AND NOT EXISTS (SELECT 1 FROM product_variations v WHERE v.product_id = p.id)
        UNION ALL
        SELECT v.product_id, v.id::text, p.name, v.weight, v.sku, v.stock_quantity
        FROM product_variations v JOIN products p ON p.id = v.product_id
        WHERE p.is_active`

	if err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM (`+stockItems+`) s WHERE s.stock_quantity <= $1`, threshold); err != nil {
		return nil, 0, err
	}

	query := `SELECT product_id, variation_id, name, weight, sku, stock_quantity FROM (` + stockItems + `) s
        WHERE s.stock_quantity <= $1 ORDER BY s.stock_quantity ASC, s.name ASC`
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}
	if err := r.DB.SelectContext(ctx, &items, query, threshold); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	items := []model.StockMovement{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at < :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM stock_movements"+whereClause, args)
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

	query := "SELECT " + movementColumns + " FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
