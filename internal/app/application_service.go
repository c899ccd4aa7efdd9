package app

import (
	"context"
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/application"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/user"
	"github.com/AnkitS-21/campus-connect-hub/internal/eligibility"
)

type ApplicationService struct {
	repo     application.Repository
	listings listing.Repository
	profiles profile.Repository
	now      func() time.Time
}

func NewApplicationService(repo application.Repository, listings listing.Repository, profiles profile.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, listings: listings, profiles: profiles, now: func() time.Time { return time.Now().UTC() }}
}

// Apply records a new application for the student. It re-reads the live
// profile and listing and re-runs the eligibility verdict at operation
// time: the student may have seen an eligible badge minutes ago, but the
// deadline keeps advancing. The duplicate pre-check is advisory; the
// store's unique constraint is what actually closes the double-submit
// race, and Create surfaces it as the same conflict error.
func (s *ApplicationService) Apply(ctx context.Context, studentID, listingID common.UUID) (*application.Application, error) {
	var prof profile.Profile
	stored, err := s.profiles.GetByUserID(ctx, studentID)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if stored != nil {
		prof = *stored
	}

	lst, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	verdict := eligibility.Evaluate(prof, *lst, s.now())
	if !verdict.Eligible {
		return nil, common.NewIneligibleError(verdict.Reasons)
	}

	if _, err := s.repo.FindByListingAndStudent(ctx, listingID, studentID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	return s.repo.Create(ctx, application.Application{
		ListingID: listingID,
		StudentID: studentID,
		Status:    application.StatusApplied,
	})
}

// UpdateStatus moves an application to any of the four closed statuses.
// Transitions are deliberately permissive so admins can correct mistakes;
// the only hard rules are the closed value set and the admin-role guard,
// which holds here as well as at the route so no caller can skip it.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID common.UUID, status string, actorRole user.Role) (*application.Application, error) {
	if actorRole != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "forbidden", nil)
	}
	next, err := application.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, applicationID, next)
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// StudentApplication is an application joined with its listing, as the
// student's tracking view consumes it.
type StudentApplication struct {
	application.Application
	Listing listing.Listing `json:"listing"`
}

// ListMine returns the student's applications with their listings. A row
// whose listing vanished mid-request is skipped; the cascade delete will
// have removed it by the next read.
func (s *ApplicationService) ListMine(ctx context.Context, studentID common.UUID) ([]StudentApplication, error) {
	items, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	views := make([]StudentApplication, 0, len(items))
	for _, item := range items {
		lst, err := s.listings.GetByID(ctx, item.ListingID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				continue
			}
			return nil, err
		}
		views = append(views, StudentApplication{Application: item, Listing: *lst})
	}
	return views, nil
}

func (s *ApplicationService) ListApplicants(ctx context.Context, listingID common.UUID) ([]application.Applicant, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.repo.ListApplicants(ctx, listingID)
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}
