package app

import (
	"context"
	"sync"
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/application"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	byUserID map[common.UUID]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: make(map[common.UUID]*profile.Profile)}
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byUserID[userID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "profile not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, p profile.Profile) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byUserID[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = common.NewUUID()
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
	r.byUserID[p.UserID] = &p
	copied := p
	return &copied, nil
}

type fakeListingRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*listing.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{byID: make(map[common.UUID]*listing.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = common.NewUUID()
	l.CreatedAt = time.Now().UTC()
	r.byID[l.ID] = &l
	copied := l
	return &copied, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[l.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	r.byID[l.ID] = &l
	copied := l
	return &copied, nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id common.UUID) (*listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeListingRepo) List(ctx context.Context) ([]listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]listing.Listing, 0, len(r.byID))
	for _, l := range r.byID {
		items = append(items, *l)
	}
	return items, nil
}

type pairKey struct {
	listingID common.UUID
	studentID common.UUID
}

type fakeApplicationRepo struct {
	mu     sync.Mutex
	byID   map[common.UUID]*application.Application
	byPair map[pairKey]common.UUID
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		byID:   make(map[common.UUID]*application.Application),
		byPair: make(map[pairKey]common.UUID),
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{listingID: app.ListingID, studentID: app.StudentID}
	if _, ok := r.byPair[key]; ok {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	r.byID[app.ID] = &app
	r.byPair[key] = app.ID
	copied := app
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByListingAndStudent(ctx context.Context, listingID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPair[pairKey{listingID: listingID, studentID: studentID}]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *r.byID[id]
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.StudentID == studentID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByListing(ctx context.Context, listingID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.ListingID == listingID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]application.Application, 0, len(r.byID))
	for _, app := range r.byID {
		items = append(items, *app)
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListApplicants(ctx context.Context, listingID common.UUID) ([]application.Applicant, error) {
	items, _ := r.ListByListing(ctx, listingID)
	applicants := make([]application.Applicant, 0, len(items))
	for _, item := range items {
		applicants = append(applicants, application.Applicant{Application: item})
	}
	return applicants, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	stored.Status = status
	stored.UpdatedAt = time.Now().UTC()
	copied := *stored
	return &copied, nil
}
