package account

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (*model.UserProfile, error)
	GetRole(ctx context.Context, userID string) (string, error)
	CreditLoyalty(ctx context.Context, userID string, points int) error

	ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error)
	CreateAddress(ctx context.Context, input *dto.AddressInput) (*model.UserAddress, error)
	UpdateAddress(ctx context.Context, input *dto.AddressInput) (*model.UserAddress, error)
	DeleteAddress(ctx context.Context, userID, id string) error

	ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]dto.Customer, int, error)
	UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.UserProfile, error)
}
