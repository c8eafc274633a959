package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const (
	productColumns = `id, name, description, category, price_pence, original_price_pence, sku,
        stock_quantity, image_url, is_active, created_at, updated_at`
	variationColumns = `id, product_id, weight, price_pence, sku, stock_quantity, created_at`
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, description, category, price_pence, original_price_pence, sku,
            stock_quantity, image_url, is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :category, :price_pence, :original_price_pence, :sku,
            :stock_quantity, :image_url, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	products := []model.Product{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Count
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM products"+whereClause, args)
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

	// List
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelisted to keep ORDER BY out of user control
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price_pence"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s", productColumns, whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            category = :category,
            price_pence = :price_pence,
            original_price_pence = :original_price_pence,
            sku = :sku,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

// Upsert is used by the catalog import; stock is only set on first insert.
func (r *PGRepository) Upsert(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, description, category, price_pence, original_price_pence, sku,
            stock_quantity, image_url, is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :category, :price_pence, :original_price_pence, :sku,
            :stock_quantity, :image_url, :is_active, :created_at, :updated_at
        )
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name,
            description = EXCLUDED.description,
            category = EXCLUDED.category,
            price_pence = EXCLUDED.price_pence,
            original_price_pence = EXCLUDED.original_price_pence,
            sku = EXCLUDED.sku,
            image_url = EXCLUDED.image_url,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	if sku == "" {
		return true, nil
	}
	var count int
	query := `SELECT count(*) FROM products WHERE sku = $1`
	args := []interface{}{sku}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) CategoryExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug)
	return exists, err
}

func (r *PGRepository) CreateVariation(ctx context.Context, v *model.ProductVariation) error {
	query := `
        INSERT INTO product_variations (id, product_id, weight, price_pence, sku, stock_quantity, created_at)
        VALUES (:id, :product_id, :weight, :price_pence, :sku, :stock_quantity, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindVariationByID(ctx context.Context, id string) (*model.ProductVariation, error) {
	var v model.ProductVariation
	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE id = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// FindVariations returns the variations of all given products ordered by
// price so the cheapest weight comes first.
func (r *PGRepository) FindVariations(ctx context.Context, productIDs []string) ([]model.ProductVariation, error) {
	variations := []model.ProductVariation{}
	if len(productIDs) == 0 {
		return variations, nil
	}

	query, args, err := sqlx.In(`SELECT `+variationColumns+` FROM product_variations
        WHERE product_id IN (?) ORDER BY product_id, price_pence ASC`, productIDs)
	if err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &variations, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return variations, nil
}

func (r *PGRepository) UpdateVariation(ctx context.Context, v *model.ProductVariation) error {
	query := `
        UPDATE product_variations
        SET weight = :weight,
            price_pence = :price_pence,
            sku = :sku
        WHERE id = :id AND product_id = :product_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) DeleteVariation(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM product_variations WHERE id = $1", id)
	return err
}

func (r *PGRepository) UpsertVariation(ctx context.Context, v *model.ProductVariation) error {
	query := `
        INSERT INTO product_variations (id, product_id, weight, price_pence, sku, stock_quantity, created_at)
        VALUES (:id, :product_id, :weight, :price_pence, :sku, :stock_quantity, :created_at)
        ON CONFLICT (id) DO UPDATE
        SET weight = EXCLUDED.weight,
            price_pence = EXCLUDED.price_pence,
            sku = EXCLUDED.sku
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}
