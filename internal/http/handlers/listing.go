package handlers

import (
	"net/http"
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/app"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/user"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/middleware"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/response"
)

type ListingHandler struct {
	listings *app.ListingService
}

func NewListingHandler(listings *app.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

type listingRequest struct {
	Name                   string    `json:"name" validate:"required"`
	Role                   string    `json:"role" validate:"required"`
	CTC                    string    `json:"ctc" validate:"required"`
	JobType                string    `json:"job_type" validate:"required,oneof=full_time internship part_time contract"`
	Location               string    `json:"location" validate:"required"`
	JDLink                 string    `json:"jd_link" validate:"omitempty,url"`
	Deadline               time.Time `json:"deadline" validate:"required"`
	MinCPI                 *float64  `json:"min_cpi" validate:"omitempty,gte=0,lte=10"`
	AllowedBranches        []string  `json:"allowed_branches"`
	AllowedMinors          []string  `json:"allowed_minors"`
	AllowedGraduationYears []int64   `json:"allowed_graduation_years"`
}

func (req listingRequest) toListing() listing.Listing {
	return listing.Listing{
		Name:                   req.Name,
		Role:                   req.Role,
		CTC:                    req.CTC,
		JobType:                listing.JobType(req.JobType),
		Location:               req.Location,
		JDLink:                 req.JDLink,
		Deadline:               req.Deadline,
		MinCPI:                 req.MinCPI,
		AllowedBranches:        req.AllowedBranches,
		AllowedMinors:          req.AllowedMinors,
		AllowedGraduationYears: req.AllowedGraduationYears,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req listingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	l := req.toListing()
	l.CreatedBy = userID
	created, err := h.listings.Create(r.Context(), l)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req listingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	l := req.toListing()
	l.ID = listingID
	updated, err := h.listings.Update(r.Context(), l)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.listings.Delete(r.Context(), listingID); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuidParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.listings.Get(r.Context(), listingID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

// List serves both roles: students get listings annotated with their
// live eligibility verdict, admins get the raw table.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if role == user.RoleStudent {
		h.listForStudent(w, r)
		return
	}
	items, err := h.listings.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ListingHandler) listForStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.listings.ListForStudent(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
