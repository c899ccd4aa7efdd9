package application

import (
	"strings"
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusSelected    Status = "selected"
)

// ParseStatus accepts exactly the four closed status values. Admins may
// move an application between any two of them, but a fifth value is a
// schema change, not an update.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case StatusApplied, StatusShortlisted, StatusRejected, StatusSelected:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid status", map[string]string{
			"status": "status must be applied, shortlisted, rejected, or selected",
		})
	}
}

// Application links one student to one listing. At most one row exists per
// (student, listing) pair, enforced by a unique constraint in the store.
type Application struct {
	ID        common.UUID `json:"id"`
	ListingID common.UUID `json:"listing_id"`
	StudentID common.UUID `json:"student_id"`
	Status    Status      `json:"status"`
	AppliedAt time.Time   `json:"applied_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Applicant is an application joined with the applicant's profile, as the
// admin pipeline and exports consume it.
type Applicant struct {
	Application
	Profile profile.Profile `json:"profile"`
}
