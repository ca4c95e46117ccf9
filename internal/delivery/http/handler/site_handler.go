package handler

import (
	"errors"
	"net/http"

	"clinic-site-api/internal/usecase"
	"clinic-site-api/pkg/response"

	"github.com/gorilla/mux"
)

type SiteHandler struct {
	websiteUsecase usecase.WebsiteUsecase
}

func NewSiteHandler(websiteUsecase usecase.WebsiteUsecase) *SiteHandler {
	return &SiteHandler{
		websiteUsecase: websiteUsecase,
	}
}

func (h *SiteHandler) GetWebsite(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	specialty := r.URL.Query().Get("specialty")

	website, err := h.websiteUsecase.GetWebsite(r.Context(), slug, specialty)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingSlug):
			MissingSlug(w, r)
		case errors.Is(err, usecase.ErrPracticeNotFound):
			response.NotFound(w, "Practice not found", response.NextActionCheckConfig)
		case errors.Is(err, usecase.ErrTransport):
			response.BadGateway(w, "Failed to load practice content")
		default:
			response.InternalServerError(w, "Failed to get website")
		}
		return
	}

	response.Success(w, http.StatusOK, "Website retrieved successfully", website)
}

// MissingSlug answers requests that reach the site routes without a practice slug.
// The site cannot be recovered by retrying.
func MissingSlug(w http.ResponseWriter, r *http.Request) {
	response.BadRequest(w, "Practice not configured", response.NextActionCheckConfig)
}
