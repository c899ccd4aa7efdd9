package app

import (
	"context"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
)

type ProfileService struct {
	repo profile.Repository
}

func NewProfileService(repo profile.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the student's profile. A student who has never saved one
// gets an empty profile rather than a not-found: the record exists
// implicitly from the moment the account does.
func (s *ProfileService) Get(ctx context.Context, userID common.UUID) (*profile.Profile, error) {
	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return &profile.Profile{UserID: userID}, nil
		}
		return nil, err
	}
	return stored, nil
}

// Upsert saves the student's own profile. Out-of-range CPI is rejected
// before it reaches the store.
func (s *ProfileService) Upsert(ctx context.Context, p profile.Profile) (*profile.Profile, error) {
	if p.CPI != nil && (*p.CPI < 0 || *p.CPI > 10) {
		return nil, common.NewValidationError("invalid profile", map[string]string{
			"cpi": "cpi must be between 0 and 10",
		})
	}
	if p.GraduationYear != nil && (*p.GraduationYear < 1950 || *p.GraduationYear > 2100) {
		return nil, common.NewValidationError("invalid profile", map[string]string{
			"graduation_year": "graduation_year is out of range",
		})
	}
	return s.repo.Upsert(ctx, p)
}
