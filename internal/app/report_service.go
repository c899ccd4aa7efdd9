package app

import (
	"context"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/application"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
)

// Report is a pure aggregation over application rows, recomputed on
// demand from a fresh read rather than maintained incrementally.
type Report struct {
	Total          int     `json:"total"`
	Applied        int     `json:"applied"`
	Shortlisted    int     `json:"shortlisted"`
	Rejected       int     `json:"rejected"`
	Selected       int     `json:"selected"`
	ConversionRate float64 `json:"conversion_rate"`
}

type ReportService struct {
	apps     application.Repository
	listings listing.Repository
}

func NewReportService(apps application.Repository, listings listing.Repository) *ReportService {
	return &ReportService{apps: apps, listings: listings}
}

func (s *ReportService) PortalReport(ctx context.Context) (*Report, error) {
	items, err := s.apps.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return tally(items), nil
}

func (s *ReportService) ListingReport(ctx context.Context, listingID common.UUID) (*Report, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	items, err := s.apps.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return tally(items), nil
}

func tally(items []application.Application) *Report {
	report := &Report{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case application.StatusApplied:
			report.Applied++
		case application.StatusShortlisted:
			report.Shortlisted++
		case application.StatusRejected:
			report.Rejected++
		case application.StatusSelected:
			report.Selected++
		}
	}
	// An empty portal converts at exactly zero, never NaN.
	if report.Total > 0 {
		report.ConversionRate = float64(report.Selected) / float64(report.Total)
	}
	return report
}
