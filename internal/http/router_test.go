package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AnkitS-21/campus-connect-hub/internal/app"
	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/application"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/user"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/handlers"
	httpmw "github.com/AnkitS-21/campus-connect-hub/internal/http/middleware"
	"github.com/AnkitS-21/campus-connect-hub/internal/security"
)

type memProfileRepo struct {
	byUserID map[common.UUID]profile.Profile
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID common.UUID) (*profile.Profile, error) {
	stored, ok := r.byUserID[userID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "profile not found", nil)
	}
	return &stored, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p profile.Profile) (*profile.Profile, error) {
	if existing, ok := r.byUserID[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = common.NewUUID()
	}
	r.byUserID[p.UserID] = p
	return &p, nil
}

type memListingRepo struct {
	byID map[common.UUID]listing.Listing
}

func (r *memListingRepo) Create(_ context.Context, l listing.Listing) (*listing.Listing, error) {
	l.ID = common.NewUUID()
	r.byID[l.ID] = l
	return &l, nil
}

func (r *memListingRepo) Update(_ context.Context, l listing.Listing) (*listing.Listing, error) {
	if _, ok := r.byID[l.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	r.byID[l.ID] = l
	return &l, nil
}

func (r *memListingRepo) Delete(_ context.Context, id common.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *memListingRepo) GetByID(_ context.Context, id common.UUID) (*listing.Listing, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	return &stored, nil
}

func (r *memListingRepo) List(_ context.Context) ([]listing.Listing, error) {
	items := make([]listing.Listing, 0, len(r.byID))
	for _, l := range r.byID {
		items = append(items, l)
	}
	return items, nil
}

type memApplicationRepo struct {
	byID   map[common.UUID]application.Application
	byPair map[[2]common.UUID]common.UUID
}

func (r *memApplicationRepo) Create(_ context.Context, a application.Application) (*application.Application, error) {
	key := [2]common.UUID{a.ListingID, a.StudentID}
	if _, ok := r.byPair[key]; ok {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	}
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	a.AppliedAt = now
	a.UpdatedAt = now
	r.byID[a.ID] = a
	r.byPair[key] = a.ID
	return &a, nil
}

func (r *memApplicationRepo) GetByID(_ context.Context, id common.UUID) (*application.Application, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return &stored, nil
}

func (r *memApplicationRepo) FindByListingAndStudent(_ context.Context, listingID, studentID common.UUID) (*application.Application, error) {
	id, ok := r.byPair[[2]common.UUID{listingID, studentID}]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	stored := r.byID[id]
	return &stored, nil
}

func (r *memApplicationRepo) ListByStudent(_ context.Context, studentID common.UUID) ([]application.Application, error) {
	var items []application.Application
	for _, a := range r.byID {
		if a.StudentID == studentID {
			items = append(items, a)
		}
	}
	return items, nil
}

func (r *memApplicationRepo) ListByListing(_ context.Context, listingID common.UUID) ([]application.Application, error) {
	var items []application.Application
	for _, a := range r.byID {
		if a.ListingID == listingID {
			items = append(items, a)
		}
	}
	return items, nil
}

func (r *memApplicationRepo) ListAll(_ context.Context) ([]application.Application, error) {
	items := make([]application.Application, 0, len(r.byID))
	for _, a := range r.byID {
		items = append(items, a)
	}
	return items, nil
}

func (r *memApplicationRepo) ListApplicants(ctx context.Context, listingID common.UUID) ([]application.Applicant, error) {
	items, _ := r.ListByListing(ctx, listingID)
	applicants := make([]application.Applicant, 0, len(items))
	for _, item := range items {
		applicants = append(applicants, application.Applicant{Application: item})
	}
	return applicants, nil
}

func (r *memApplicationRepo) UpdateStatus(_ context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	stored.Status = status
	stored.UpdatedAt = time.Now().UTC()
	r.byID[id] = stored
	return &stored, nil
}

type portalFixture struct {
	router       http.Handler
	studentToken string
	adminToken   string
	studentID    common.UUID
	adminID      common.UUID
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()

	profiles := &memProfileRepo{byUserID: make(map[common.UUID]profile.Profile)}
	listings := &memListingRepo{byID: make(map[common.UUID]listing.Listing)}
	applications := &memApplicationRepo{
		byID:   make(map[common.UUID]application.Application),
		byPair: make(map[[2]common.UUID]common.UUID),
	}

	profileService := app.NewProfileService(profiles)
	listingService := app.NewListingService(listings, profiles, applications)
	applicationService := app.NewApplicationService(applications, listings, profiles)
	reportService := app.NewReportService(applications, listings)

	jwtProvider := security.NewJWTProvider("router-test-secret")
	limiter := httpmw.NewRateLimiter()

	router := NewRouter(RouterDependencies{
		ProfileHandler:     handlers.NewProfileHandler(profileService),
		ListingHandler:     handlers.NewListingHandler(listingService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, limiter),
		ReportHandler:      handlers.NewReportHandler(reportService),
		ExportHandler:      handlers.NewExportHandler(applicationService, listingService),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		RequestTimeout:     5 * time.Second,
	})

	studentID := common.NewUUID()
	adminID := common.NewUUID()
	studentToken, _, err := jwtProvider.Generate(studentID, user.RoleStudent, time.Hour)
	require.NoError(t, err)
	adminToken, _, err := jwtProvider.Generate(adminID, user.RoleAdmin, time.Hour)
	require.NoError(t, err)

	return &portalFixture{
		router:       router,
		studentToken: studentToken,
		adminToken:   adminToken,
		studentID:    studentID,
		adminID:      adminID,
	}
}

func (f *portalFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *portalFixture) createListing(t *testing.T) common.UUID {
	t.Helper()
	minCPI := 7.0
	rec := f.do(t, http.MethodPost, "/listings", f.adminToken, map[string]any{
		"name":             "Acme Corp",
		"role":             "SDE",
		"ctc":              "24 LPA",
		"job_type":         "full_time",
		"location":         "Bengaluru",
		"deadline":         time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
		"min_cpi":          minCPI,
		"allowed_branches": []string{"CSE", "ECE"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created listing.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func (f *portalFixture) saveStudentProfile(t *testing.T) {
	t.Helper()
	rec := f.do(t, http.MethodPut, "/students/profile", f.studentToken, map[string]any{
		"full_name":       "Priya Sharma",
		"roll_no":         "210101042",
		"email":           "priya@example.edu",
		"cpi":             8.2,
		"branch":          "CSE",
		"graduation_year": 2026,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterHealthIsPublic(t *testing.T) {
	f := newPortalFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRejectsMissingToken(t *testing.T) {
	f := newPortalFixture(t)
	rec := f.do(t, http.MethodGet, "/listings", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterStudentCannotCreateListing(t *testing.T) {
	f := newPortalFixture(t)
	rec := f.do(t, http.MethodPost, "/listings", f.studentToken, map[string]any{"name": "x"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterInvalidListingPayloadReportsFields(t *testing.T) {
	f := newPortalFixture(t)
	rec := f.do(t, http.MethodPost, "/listings", f.adminToken, map[string]any{
		"name":     "Acme Corp",
		"role":     "SDE",
		"ctc":      "24 LPA",
		"job_type": "gig",
		"location": "Bengaluru",
		"deadline": time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Fields, "JobType")
}

func TestRouterApplyFlow(t *testing.T) {
	f := newPortalFixture(t)
	listingID := f.createListing(t)
	f.saveStudentProfile(t)

	rec := f.do(t, http.MethodGet, "/listings", f.studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var browse []app.StudentListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &browse))
	require.Len(t, browse, 1)
	require.True(t, browse[0].Open)
	require.True(t, browse[0].Verdict.Eligible)
	require.False(t, browse[0].Applied)

	rec = f.do(t, http.MethodPost, "/applications", f.studentToken, map[string]any{"listing_id": listingID.String()})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created application.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, application.StatusApplied, created.Status)

	rec = f.do(t, http.MethodPost, "/applications", f.studentToken, map[string]any{"listing_id": listingID.String()})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/applications", f.studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []app.StudentApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, "Acme Corp", mine[0].Listing.Name)

	rec = f.do(t, http.MethodGet, "/listings", f.studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &browse))
	require.True(t, browse[0].Applied)
	require.NotNil(t, browse[0].MyStatus)
	require.Equal(t, application.StatusApplied, *browse[0].MyStatus)
}

func TestRouterIneligibleApplyIsUnprocessable(t *testing.T) {
	f := newPortalFixture(t)
	listingID := f.createListing(t)

	rec := f.do(t, http.MethodPut, "/students/profile", f.studentToken, map[string]any{
		"full_name":       "Rohan Mehta",
		"cpi":             6.1,
		"branch":          "ME",
		"graduation_year": 2026,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/applications", f.studentToken, map[string]any{"listing_id": listingID.String()})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Reasons []string `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"CPI below minimum", "branch not eligible"}, body.Reasons)
}

func TestRouterStatusUpdateIsAdminOnly(t *testing.T) {
	f := newPortalFixture(t)
	listingID := f.createListing(t)
	f.saveStudentProfile(t)

	rec := f.do(t, http.MethodPost, "/applications", f.studentToken, map[string]any{"listing_id": listingID.String()})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created application.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodPatch, "/applications/"+created.ID.String()+"/status", f.studentToken, map[string]any{"status": "selected"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPatch, "/applications/"+created.ID.String()+"/status", f.adminToken, map[string]any{"status": "shortlisted"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated application.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, application.StatusShortlisted, updated.Status)
}

func TestRouterReportsAreAdminOnly(t *testing.T) {
	f := newPortalFixture(t)
	listingID := f.createListing(t)
	f.saveStudentProfile(t)

	rec := f.do(t, http.MethodPost, "/applications", f.studentToken, map[string]any{"listing_id": listingID.String()})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/reports", f.studentToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/reports", f.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report app.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 1, report.Total)
	require.Equal(t, 1, report.Applied)
	require.Zero(t, report.ConversionRate)

	rec = f.do(t, http.MethodGet, "/listings/"+listingID.String()+"/report", f.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
