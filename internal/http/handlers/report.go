package handlers

import (
	"net/http"

	"github.com/AnkitS-21/campus-connect-hub/internal/app"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/response"
)

type ReportHandler struct {
	reports *app.ReportService
}

func NewReportHandler(reports *app.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Portal(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.PortalReport(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Listing(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	report, err := h.reports.ListingReport(r.Context(), listingID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, report)
}
