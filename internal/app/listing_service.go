package app

import (
	"context"
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/application"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
	"github.com/AnkitS-21/campus-connect-hub/internal/eligibility"
)

type ListingService struct {
	repo     listing.Repository
	profiles profile.Repository
	apps     application.Repository
	now      func() time.Time
}

func NewListingService(repo listing.Repository, profiles profile.Repository, apps application.Repository) *ListingService {
	return &ListingService{repo: repo, profiles: profiles, apps: apps, now: func() time.Time { return time.Now().UTC() }}
}

// StudentListing is a listing annotated for the browsing student: the
// live eligibility verdict, whether the deadline is still open, and the
// student's own application status when one exists.
type StudentListing struct {
	listing.Listing
	Open     bool                `json:"open"`
	Verdict  eligibility.Result  `json:"verdict"`
	Applied  bool                `json:"applied"`
	MyStatus *application.Status `json:"my_status,omitempty"`
}

func (s *ListingService) Create(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	if err := validateListing(l); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, l)
}

func (s *ListingService) Update(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	current, err := s.repo.GetByID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.CreatedBy = current.CreatedBy
	l.CreatedAt = current.CreatedAt
	if err := validateListing(l); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, l)
}

// Delete removes the listing; its applications go with it (cascade in the
// store), so orphaned rows can never surface in pipelines or reports.
func (s *ListingService) Delete(ctx context.Context, id common.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ListingService) Get(ctx context.Context, id common.UUID) (*listing.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ListingService) List(ctx context.Context) ([]listing.Listing, error) {
	return s.repo.List(ctx)
}

// ListForStudent returns every listing with the student's eligibility
// verdict computed against fresh reads. Nothing here is cached: a stale
// verdict is worse than a repeated computation at this volume.
func (s *ListingService) ListForStudent(ctx context.Context, studentID common.UUID) ([]StudentListing, error) {
	var prof profile.Profile
	stored, err := s.profiles.GetByUserID(ctx, studentID)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if stored != nil {
		prof = *stored
	}

	listings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := s.apps.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	statusByListing := make(map[common.UUID]application.Status, len(mine))
	for _, app := range mine {
		statusByListing[app.ListingID] = app.Status
	}

	now := s.now()
	items := make([]StudentListing, 0, len(listings))
	for _, l := range listings {
		item := StudentListing{
			Listing: l,
			Open:    l.Open(now),
			Verdict: eligibility.Evaluate(prof, l, now),
		}
		if status, ok := statusByListing[l.ID]; ok {
			item.Applied = true
			item.MyStatus = &status
		}
		items = append(items, item)
	}
	return items, nil
}

func validateListing(l listing.Listing) error {
	fields := map[string]string{}
	if l.Name == "" {
		fields["name"] = "name is required"
	}
	if l.Role == "" {
		fields["role"] = "role is required"
	}
	if l.CTC == "" {
		fields["ctc"] = "ctc is required"
	}
	if _, ok := listing.ParseJobType(string(l.JobType)); !ok {
		fields["job_type"] = "job_type must be full_time, internship, part_time, or contract"
	}
	if l.Location == "" {
		fields["location"] = "location is required"
	}
	if l.Deadline.IsZero() {
		fields["deadline"] = "deadline is required"
	}
	if l.MinCPI != nil && (*l.MinCPI < 0 || *l.MinCPI > 10) {
		fields["min_cpi"] = "min_cpi must be between 0 and 10"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid listing", fields)
	}
	return nil
}
