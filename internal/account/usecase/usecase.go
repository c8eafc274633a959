package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/account"
	"github.com/fekuna/omnipos-storefront-service/internal/account/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type accountUseCase struct {
	repo           account.Repository
	defaultCountry string
	logger         logger.ZapLogger
}

func NewAccountUseCase(repo account.Repository, defaultCountry string, log logger.ZapLogger) account.UseCase {
	return &accountUseCase{
		repo:           repo,
		defaultCountry: defaultCountry,
		logger:         log,
	}
}

func (uc *accountUseCase) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	return uc.repo.EnsureProfile(ctx, userID)
}

func (uc *accountUseCase) UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (*model.UserProfile, error) {
	p, err := uc.repo.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.FullName == nil {
		return p, nil
	}

	name := strings.TrimSpace(*input.FullName)
	p, err = uc.repo.UpdateFullName(ctx, userID, &name)
	if err != nil {
		uc.logger.Error("failed to update profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, errx.NotFound(account.ErrCustomerNotFound, "profile not found")
	}
	return p, nil
}

// GetRole treats users without a profile as customers.
func (uc *accountUseCase) GetRole(ctx context.Context, userID string) (string, error) {
	p, err := uc.repo.FindProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return model.RoleCustomer, nil
	}
	return p.Role, nil
}

func (uc *accountUseCase) CreditLoyalty(ctx context.Context, userID string, points int) error {
	if userID == "" || points <= 0 {
		return nil
	}
	if err := uc.repo.AddLoyaltyPoints(ctx, userID, points); err != nil {
		return err
	}
	uc.logger.Info("loyalty leafs credited", zap.String("user_id", userID), zap.Int("points", points))
	return nil
}

func (uc *accountUseCase) ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error) {
	return uc.repo.ListAddresses(ctx, userID)
}

func (uc *accountUseCase) normalizeAddress(input *dto.AddressInput) (*model.UserAddress, error) {
	a := &model.UserAddress{
		ID:           input.ID,
		UserID:       input.UserID,
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		City:         strings.TrimSpace(input.City),
		Postcode:     strings.ToUpper(strings.TrimSpace(input.Postcode)),
		Country:      strings.TrimSpace(input.Country),
	}
	if input.AddressLine2 != nil {
		if line2 := strings.TrimSpace(*input.AddressLine2); line2 != "" {
			a.AddressLine2 = &line2
		}
	}
	if a.Country == "" {
		a.Country = uc.defaultCountry
	}

	required := []struct{ field, value string }{
		{"address_line1", a.AddressLine1},
		{"city", a.City},
		{"postcode", a.Postcode},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, errx.BadRequest(fmt.Errorf("%w: %s", account.ErrMissingField, f.field), f.field+" is required")
		}
	}
	return a, nil
}

func (uc *accountUseCase) CreateAddress(ctx context.Context, input *dto.AddressInput) (*model.UserAddress, error) {
	a, err := uc.normalizeAddress(input)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.New().String()
	a.CreatedAt = time.Now().UTC()

	if err := uc.repo.CreateAddress(ctx, a); err != nil {
		uc.logger.Error("failed to create address", zap.String("user_id", a.UserID), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (uc *accountUseCase) UpdateAddress(ctx context.Context, input *dto.AddressInput) (*model.UserAddress, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, errx.NotFound(account.ErrAddressNotFound, "address not found")
	}
	a, err := uc.normalizeAddress(input)
	if err != nil {
		return nil, err
	}

	ok, err := uc.repo.UpdateAddress(ctx, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errx.NotFound(account.ErrAddressNotFound, "address not found")
	}
	return uc.repo.FindAddress(ctx, a.UserID, a.ID)
}

func (uc *accountUseCase) DeleteAddress(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errx.NotFound(account.ErrAddressNotFound, "address not found")
	}
	ok, err := uc.repo.DeleteAddress(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return errx.NotFound(account.ErrAddressNotFound, "address not found")
	}
	return nil
}

func (uc *accountUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]dto.Customer, int, error) {
	return uc.repo.FindCustomers(ctx, filters)
}

func (uc *accountUseCase) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.UserProfile, error) {
	fields := &dto.UpdateCustomerInput{ID: input.ID, LoyaltyPoints: input.LoyaltyPoints, Role: input.Role}
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		fields.FullName = &name
	}
	if fields.LoyaltyPoints != nil && *fields.LoyaltyPoints < 0 {
		return nil, errx.BadRequest(account.ErrInvalidPoints, "loyalty points cannot be negative")
	}
	if fields.Role != nil && *fields.Role != model.RoleCustomer && *fields.Role != model.RoleAdmin {
		return nil, errx.BadRequest(account.ErrInvalidRole, "role must be customer or admin")
	}

	p, err := uc.repo.UpdateCustomer(ctx, fields)
	if err != nil {
		uc.logger.Error("failed to update customer", zap.String("user_id", input.ID), zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, errx.NotFound(account.ErrCustomerNotFound, "customer not found")
	}
	uc.logger.Info("customer updated", zap.String("user_id", p.ID), zap.String("role", p.Role))
	return p, nil
}
