package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/usecase"
	"clinic-site-api/pkg/response"
	"clinic-site-api/pkg/validator"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	req := dto.AvailableSlotsRequest{
		Slug:     vars["slug"],
		DoctorID: vars["doctorId"],
		Date:     query.Get("date"),
	}
	if raw := query.Get("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid duration, use minutes", response.NextActionFixInput)
			return
		}
		req.Duration = duration
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingSlug):
			MissingSlug(w, r)
		case errors.Is(err, usecase.ErrInvalidDate):
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD", response.NextActionFixInput)
		case errors.Is(err, usecase.ErrDateOutOfRange):
			response.BadRequest(w, "Date is outside the bookable window", response.NextActionFixInput)
		case errors.Is(err, usecase.ErrInvalidDuration):
			response.BadRequest(w, "Invalid duration", response.NextActionFixInput)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found", response.NextActionResetSelection)
		case errors.Is(err, usecase.ErrPracticeNotFound):
			response.NotFound(w, "Practice not found", response.NextActionCheckConfig)
		case errors.Is(err, usecase.ErrTransport):
			response.BadGateway(w, "Failed to load available slots")
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
