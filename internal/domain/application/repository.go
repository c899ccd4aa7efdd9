package application

import (
	"context"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
)

type Repository interface {
	// Create inserts a new row and returns a conflict error when the
	// (student, listing) pair already has one. The uniqueness check lives
	// in the store so concurrent duplicate submissions cannot race.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByListingAndStudent(ctx context.Context, listingID, studentID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Application, error)
	ListByListing(ctx context.Context, listingID common.UUID) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	ListApplicants(ctx context.Context, listingID common.UUID) ([]Applicant, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
