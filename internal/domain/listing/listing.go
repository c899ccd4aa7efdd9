package listing

import (
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypeInternship JobType = "internship"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
)

func ParseJobType(value string) (JobType, bool) {
	switch JobType(value) {
	case JobTypeFullTime, JobTypeInternship, JobTypePartTime, JobTypeContract:
		return JobType(value), true
	default:
		return "", false
	}
}

// Listing is an admin-created posting with eligibility constraints and a
// deadline. Empty constraint sets mean "no restriction". CTC is a display
// string; no arithmetic is ever done on it.
type Listing struct {
	ID                     common.UUID `json:"id"`
	Name                   string      `json:"name"`
	Role                   string      `json:"role"`
	CTC                    string      `json:"ctc"`
	JobType                JobType     `json:"job_type"`
	Location               string      `json:"location"`
	JDLink                 string      `json:"jd_link,omitempty"`
	Deadline               time.Time   `json:"deadline"`
	MinCPI                 *float64    `json:"min_cpi,omitempty"`
	AllowedBranches        []string    `json:"allowed_branches,omitempty"`
	AllowedMinors          []string    `json:"allowed_minors,omitempty"`
	AllowedGraduationYears []int64     `json:"allowed_graduation_years,omitempty"`
	CreatedBy              common.UUID `json:"created_by,omitempty"`
	CreatedAt              time.Time   `json:"created_at"`
}

// Open is always derived from the deadline, never stored, so a listing can
// never carry a stale activity flag.
func (l Listing) Open(now time.Time) bool {
	return now.Before(l.Deadline)
}
