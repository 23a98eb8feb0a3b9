package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"app/internal/domain/model"
	"app/internal/storage"
)

// ProfileUsecase は顧客プロフィール文書（Table Storage）のCRUD。
// リレーショナル側のCustomerとは独立した管理者向けの台帳。
type ProfileUsecase struct {
	profiles storage.ProfileStore
	clock    Clock
}

func NewProfileUsecase(profiles storage.ProfileStore, clock Clock) *ProfileUsecase {
	return &ProfileUsecase{
		profiles: profiles,
		clock:    clock,
	}
}

type ProfileInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     string
	IsActive    bool
}

func (u *ProfileUsecase) CreateProfile(ctx context.Context, adminUserID int64, in ProfileInput) (model.CustomerProfile, error) {
	if adminUserID <= 0 {
		return model.CustomerProfile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProfileInput(in); err != nil {
		return model.CustomerProfile{}, err
	}

	p, err := u.profiles.CreateProfile(ctx, model.CustomerProfile{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		IsActive:    in.IsActive,
		CreatedDate: u.clock.Now(),
	})
	if err != nil {
		return model.CustomerProfile{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return p, nil
}

func (u *ProfileUsecase) GetProfile(ctx context.Context, adminUserID int64, profileID string) (model.CustomerProfile, error) {
	if adminUserID <= 0 {
		return model.CustomerProfile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if profileID == "" {
		return model.CustomerProfile{}, NewHTTPError(http.StatusBadRequest, "invalid profile id")
	}

	p, err := u.profiles.GetProfile(ctx, profileID)
	if err == storage.ErrNotFound {
		return model.CustomerProfile{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.CustomerProfile{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return p, nil
}

func (u *ProfileUsecase) ListProfiles(ctx context.Context, adminUserID int64) ([]model.CustomerProfile, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	profiles, err := u.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return profiles, nil
}

func (u *ProfileUsecase) UpdateProfile(ctx context.Context, adminUserID int64, profileID string, in ProfileInput) (model.CustomerProfile, error) {
	if adminUserID <= 0 {
		return model.CustomerProfile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if profileID == "" {
		return model.CustomerProfile{}, NewHTTPError(http.StatusBadRequest, "invalid profile id")
	}
	if err := validateProfileInput(in); err != nil {
		return model.CustomerProfile{}, err
	}

	current, err := u.profiles.GetProfile(ctx, profileID)
	if err == storage.ErrNotFound {
		return model.CustomerProfile{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.CustomerProfile{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	updated := model.CustomerProfile{
		ID:          profileID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		IsActive:    in.IsActive,
		CreatedDate: current.CreatedDate,
	}

	if err := u.profiles.UpdateProfile(ctx, updated); err != nil {
		if err == storage.ErrNotFound {
			return model.CustomerProfile{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.CustomerProfile{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return updated, nil
}

func (u *ProfileUsecase) DeleteProfile(ctx context.Context, adminUserID int64, profileID string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if profileID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid profile id")
	}

	err := u.profiles.DeleteProfile(ctx, profileID)
	if err == storage.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}

func validateProfileInput(in ProfileInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return NewHTTPError(http.StatusBadRequest, "first_name required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return NewHTTPError(http.StatusBadRequest, "last_name required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	return nil
}
