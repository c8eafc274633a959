package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/category/mocks"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_DerivesSlug(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.On("FindBySlug", ctx, "black-tea").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *model.Category) bool {
		return c.Slug == "black-tea" && c.Name == "Black Tea" && c.IsActive && c.Description == nil
	})).Return(nil)

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: " Black Tea "})
	require.NoError(t, err)
	assert.Equal(t, "black-tea", cat.Slug)
	repo.AssertExpectations(t)
}

func TestCreateCategory_Conflict(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.On("FindBySlug", ctx, "green").Return(&model.Category{Slug: "green"}, nil)

	_, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Slug: "Green", Name: "Green"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, errx.From(err).Status)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_RequiresName(t *testing.T) {
	uc := NewCategoryUseCase(new(mocks.Repository), logger.NewNop())
	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, errx.From(err).Status)
}

func TestGetCategory_NotFound(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewCategoryUseCase(repo, logger.NewNop())
	repo.On("FindBySlug", mock.Anything, "nope").Return(nil, nil)

	_, err := uc.GetCategory(context.Background(), "nope")
	assert.Equal(t, http.StatusNotFound, errx.From(err).Status)
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	repo := new(mocks.Repository)
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.On("FindBySlug", ctx, "oolong").Return(&model.Category{Slug: "oolong", Name: "Oolong", IsActive: true}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(c *model.Category) bool {
		return c.Name == "Oolong Teas" && !c.IsActive && c.SortOrder == 3
	})).Return(nil)
	repo.On("Delete", ctx, "oolong").Return(nil)

	cat, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{Slug: "oolong", Name: "Oolong Teas", SortOrder: 3})
	require.NoError(t, err)
	assert.False(t, cat.IsActive)

	require.NoError(t, uc.DeleteCategory(ctx, "oolong"))
	repo.AssertExpectations(t)
}
