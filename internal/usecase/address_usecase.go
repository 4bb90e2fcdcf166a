package usecase

import (
	"context"
	"net/http"
	"strings"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type AddressInput struct {
	CountryCode string
	City        string
	Street      string
	PostalCode  string
	IsDefault   bool
}

type AddressOutput struct {
	ID          int64  `json:"id"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	Street      string `json:"street"`
	PostalCode  string `json:"postal_code"`
	IsDefault   bool   `json:"is_default"`
}

func validateAddressInput(in AddressInput) error {
	cc := strings.TrimSpace(in.CountryCode)
	if len(cc) != 2 {
		return NewHTTPError(http.StatusBadRequest, "country_code must be 2 letters")
	}
	if strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.Street) == "" ||
		strings.TrimSpace(in.PostalCode) == "" {
		return NewHTTPError(http.StatusBadRequest, "city, street and postal_code are required")
	}
	return nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressInput) (AddressOutput, error) {
	if userID <= 0 {
		return AddressOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateAddressInput(in); err != nil {
		return AddressOutput{}, err
	}

	addr, err := u.addresses.Create(ctx, model.Address{
		UserID:      userID,
		CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
		City:        strings.TrimSpace(in.City),
		Street:      strings.TrimSpace(in.Street),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		IsDefault:   in.IsDefault,
	})
	if err != nil {
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.IsDefault {
		if err := u.addresses.SetDefault(ctx, userID, addr.ID); err != nil {
			return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return toAddressOutput(addr), nil
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]AddressOutput, error) {
	if userID <= 0 {
		return []AddressOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return []AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]AddressOutput, 0, len(list))
	for _, a := range list {
		outs = append(outs, toAddressOutput(a))
	}
	return outs, nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, in AddressInput) (AddressOutput, error) {
	if userID <= 0 {
		return AddressOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return AddressOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateAddressInput(in); err != nil {
		return AddressOutput{}, err
	}

	if err := u.ensureOwned(ctx, userID, addressID); err != nil {
		return AddressOutput{}, err
	}

	addr := model.Address{
		ID:          addressID,
		UserID:      userID,
		CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
		City:        strings.TrimSpace(in.City),
		Street:      strings.TrimSpace(in.Street),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		IsDefault:   in.IsDefault,
	}
	if err := u.addresses.Update(ctx, addr); err != nil {
		if err == repo.ErrNotFound {
			return AddressOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.IsDefault {
		if err := u.addresses.SetDefault(ctx, userID, addressID); err != nil {
			return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return toAddressOutput(addr), nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.ensureOwned(ctx, userID, addressID); err != nil {
		return err
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "address not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetDefault はデフォルト住所の切り替え。他の住所のフラグは下りる
func (u *AddressUsecase) SetDefault(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.ensureOwned(ctx, userID, addressID); err != nil {
		return err
	}

	if err := u.addresses.SetDefault(ctx, userID, addressID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AddressUsecase) ensureOwned(ctx context.Context, userID, addressID int64) error {
	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他人の住所は存在しない扱い
	if !owned {
		return NewHTTPError(http.StatusNotFound, "address not found")
	}
	return nil
}

func toAddressOutput(a model.Address) AddressOutput {
	return AddressOutput{
		ID:          a.ID,
		CountryCode: a.CountryCode,
		City:        a.City,
		Street:      a.Street,
		PostalCode:  a.PostalCode,
		IsDefault:   a.IsDefault,
	}
}
