package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shlankd/developEcommerce/internal/domain/model"
	repo "github.com/shlankd/developEcommerce/internal/repository"
)

type AddressUsecase struct {
	addressRepo repo.AddressRepository
}

func NewAddressUsecase(addressRepo repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo}
}

type AddressCreateInput struct {
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Postcode    string `json:"postcode"`
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressCreateInput) (model.Address, error) {
	if strings.TrimSpace(in.AddressLine) == "" ||
		strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.Country) == "" ||
		strings.TrimSpace(in.Postcode) == "" {
		return model.Address{}, ErrValidation
	}

	return u.addressRepo.Create(ctx, model.Address{
		UserID:      userID,
		AddressLine: in.AddressLine,
		City:        in.City,
		Country:     in.Country,
		Postcode:    in.Postcode,
	})
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	return u.addressRepo.ListByUserID(ctx, userID)
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	a, err := u.addressRepo.FindByID(ctx, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAddressNotFound
	}
	if err != nil {
		return err
	}

	//他人の住所は削除不可
	if a.UserID != userID {
		return ErrUserNotMatched
	}

	return u.addressRepo.Delete(ctx, addressID)
}
