// Package eligibility decides whether a profile may apply to a listing.
// Evaluate is a pure function of its three inputs so verdicts are
// reproducible and testable without a store.
package eligibility

import (
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
)

// Reason strings are fixed so failure output is deterministic. They are
// appended in check order, which is also the order shown to students.
const (
	ReasonCPIBelowMinimum   = "CPI below minimum"
	ReasonBranchNotEligible = "branch not eligible"
	ReasonMinorNotEligible  = "minor not eligible"
	ReasonYearNotEligible   = "graduation year not eligible"
	ReasonDeadlinePassed    = "deadline passed"
	ReasonProfileIncomplete = "profile incomplete"
)

type Result struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// Evaluate runs the six checks in their fixed order. Constraint checks
// 1-4 fire only when both the listing constraint and the profile field are
// present: a missing profile field cannot be verified, so it does not
// block here. Completeness is the separate final gate, which is why an
// incomplete profile can pass checks 1-4 and still be ineligible.
func Evaluate(p profile.Profile, l listing.Listing, now time.Time) Result {
	reasons := make([]string, 0, 6)

	if l.MinCPI != nil && p.CPI != nil && *p.CPI < *l.MinCPI {
		reasons = append(reasons, ReasonCPIBelowMinimum)
	}
	if len(l.AllowedBranches) > 0 && p.Branch != "" && !containsString(l.AllowedBranches, p.Branch) {
		reasons = append(reasons, ReasonBranchNotEligible)
	}
	if len(l.AllowedMinors) > 0 && p.Minor != "" && !containsString(l.AllowedMinors, p.Minor) {
		reasons = append(reasons, ReasonMinorNotEligible)
	}
	if len(l.AllowedGraduationYears) > 0 && p.GraduationYear != nil && !containsInt(l.AllowedGraduationYears, *p.GraduationYear) {
		reasons = append(reasons, ReasonYearNotEligible)
	}
	if !now.Before(l.Deadline) {
		reasons = append(reasons, ReasonDeadlinePassed)
	}
	if !p.Complete() {
		reasons = append(reasons, ReasonProfileIncomplete)
	}

	return Result{Eligible: len(reasons) == 0, Reasons: reasons}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsInt(values []int64, target int64) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
