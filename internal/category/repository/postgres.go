package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const categoryColumns = "slug, name, description, sort_order, is_active, created_at, updated_at"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (slug, name, description, sort_order, is_active, created_at, updated_at)
        VALUES (:slug, :name, :description, :sort_order, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	categories := []model.Category{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM categories"+whereClause, args)
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

	query := "SELECT " + categoryColumns + " FROM categories" + whereClause + " ORDER BY sort_order ASC, name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            description = :description,
            sort_order = :sort_order,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE slug = :slug
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

// Delete removes the category; products.category is reset to NULL by the
// foreign key.
func (r *PGRepository) Delete(ctx context.Context, slug string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE slug = $1", slug)
	return err
}

func (r *PGRepository) Upsert(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (slug, name, description, sort_order, is_active, created_at, updated_at)
        VALUES (:slug, :name, :description, :sort_order, :is_active, :created_at, :updated_at)
        ON CONFLICT (slug) DO UPDATE
        SET name = EXCLUDED.name,
            description = EXCLUDED.description,
            sort_order = EXCLUDED.sort_order,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}
