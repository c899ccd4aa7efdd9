package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/app"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/application"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/response"
)

// ExportHandler streams an applicant table as CSV. The reporter and
// ledger emit structured records; turning them into a file happens only
// here at the HTTP edge.
type ExportHandler struct {
	applications *app.ApplicationService
	listings     *app.ListingService
}

func NewExportHandler(applications *app.ApplicationService, listings *app.ListingService) *ExportHandler {
	return &ExportHandler{applications: applications, listings: listings}
}

var exportHeader = []string{
	"Name", "Roll No", "Email", "Phone", "CPI", "Branch", "Minor",
	"Graduation Year", "Resume Link", "Status", "Applied At",
}

func (h *ExportHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	lst, err := h.listings.Get(r.Context(), listingID)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicants, err := h.applications.ListApplicants(r.Context(), listingID)
	if err != nil {
		response.Error(w, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", sanitizeFilename(lst.Name), time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	_ = writer.Write(exportHeader)
	for _, item := range applicants {
		_ = writer.Write(exportRow(item))
	}
	writer.Flush()
}

func exportRow(item application.Applicant) []string {
	p := item.Profile
	cpi := ""
	if p.CPI != nil {
		cpi = strconv.FormatFloat(*p.CPI, 'f', -1, 64)
	}
	year := ""
	if p.GraduationYear != nil {
		year = strconv.FormatInt(*p.GraduationYear, 10)
	}
	return []string{
		p.FullName, p.RollNo, p.Email, p.Phone, cpi, p.Branch, p.Minor,
		year, p.ResumeLink, string(item.Status),
		item.AppliedAt.UTC().Format("2006-01-02 15:04"),
	}
}

func sanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if cleaned == "" {
		return "applicants"
	}
	return cleaned
}
