package account

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	FindProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	// EnsureProfile returns the profile, creating an empty one first if needed.
	EnsureProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	UpdateFullName(ctx context.Context, userID string, fullName *string) (*model.UserProfile, error)
	UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.UserProfile, error)
	AddLoyaltyPoints(ctx context.Context, userID string, points int) error

	ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error)
	FindAddress(ctx context.Context, userID, id string) (*model.UserAddress, error)
	CreateAddress(ctx context.Context, a *model.UserAddress) error
	UpdateAddress(ctx context.Context, a *model.UserAddress) (bool, error)
	DeleteAddress(ctx context.Context, userID, id string) (bool, error)

	FindCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]dto.Customer, int, error)
}
