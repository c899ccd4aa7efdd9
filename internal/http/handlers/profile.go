package handlers

import (
	"net/http"

	"github.com/AnkitS-21/campus-connect-hub/internal/app"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/middleware"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileRequest struct {
	FullName       string   `json:"full_name"`
	RollNo         string   `json:"roll_no"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone"`
	CPI            *float64 `json:"cpi" validate:"omitempty,gte=0,lte=10"`
	Branch         string   `json:"branch"`
	Minor          string   `json:"minor"`
	GraduationYear *int64   `json:"graduation_year" validate:"omitempty,gte=1950,lte=2100"`
	ResumeLink     string   `json:"resume_link" validate:"omitempty,url"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	stored, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stored)
}

// Upsert saves the caller's own profile; the user id always comes from
// the token, never from the payload.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.profiles.Upsert(r.Context(), profile.Profile{
		UserID:         userID,
		FullName:       req.FullName,
		RollNo:         req.RollNo,
		Email:          req.Email,
		Phone:          req.Phone,
		CPI:            req.CPI,
		Branch:         req.Branch,
		Minor:          req.Minor,
		GraduationYear: req.GraduationYear,
		ResumeLink:     req.ResumeLink,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}
