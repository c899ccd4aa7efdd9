package profile

import (
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
)

// Profile holds a student's eligibility-relevant attributes. Academic
// fields are pointers because a freshly provisioned profile is empty and
// absent values must stay distinguishable from zero.
type Profile struct {
	ID             common.UUID `json:"id"`
	UserID         common.UUID `json:"user_id"`
	FullName       string      `json:"full_name,omitempty"`
	RollNo         string      `json:"roll_no,omitempty"`
	Email          string      `json:"email,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	CPI            *float64    `json:"cpi,omitempty"`
	Branch         string      `json:"branch,omitempty"`
	Minor          string      `json:"minor,omitempty"`
	GraduationYear *int64      `json:"graduation_year,omitempty"`
	ResumeLink     string      `json:"resume_link,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Complete reports whether the profile can back an application: full name,
// CPI, branch, and graduation year must all be present.
func (p Profile) Complete() bool {
	return p.FullName != "" && p.CPI != nil && p.Branch != "" && p.GraduationYear != nil
}
