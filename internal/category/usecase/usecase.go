package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/slug"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errx.BadRequest(errors.New("empty name"), "category name is required")
	}
	s := slug.Make(input.Slug)
	if s == "" {
		s = slug.Make(name)
	}
	if s == "" {
		return nil, errx.BadRequest(errors.New("empty slug"), "category slug could not be derived from the name")
	}

	existing, err := uc.repo.FindBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errx.Conflict(category.ErrSlugTaken, "a category with this slug already exists")
	}

	now := time.Now()
	cat := &model.Category{
		Slug:        s,
		Name:        name,
		Description: optional(input.Description),
		SortOrder:   input.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.logger.Info("category created", zap.String("slug", cat.Slug))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, slug string) (*model.Category, error) {
	cat, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, errx.NotFound(category.ErrCategoryNotFound, "category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.GetCategory(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		cat.Name = name
	}
	cat.Description = optional(input.Description)
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, slug string) error {
	if _, err := uc.GetCategory(ctx, slug); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, slug); err != nil {
		return err
	}
	uc.logger.Info("category deleted", zap.String("slug", slug))
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
