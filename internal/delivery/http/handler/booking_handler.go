package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/usecase"
	"clinic-site-api/pkg/response"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
}

// NewBookingHandler leaves field validation to the usecase, which reports the
// first invalid field with a patient-facing message.
func NewBookingHandler(bookingUsecase usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", response.NextActionFixInput)
		return
	}

	submission, err := h.bookingUsecase.Submit(r.Context(), mux.Vars(r)["slug"], &req)
	if err != nil {
		if ve, ok := usecase.IsValidation(err); ok {
			response.Error(w, http.StatusBadRequest, ve.Message, map[string]string{ve.Field: ve.Message}, response.NextActionFixInput)
			return
		}
		switch {
		case errors.Is(err, usecase.ErrMissingSlug):
			MissingSlug(w, r)
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	switch err := usecase.SubmissionError(submission); {
	case err == nil:
		response.Success(w, http.StatusCreated, "Booking created successfully", submission)
	case errors.Is(err, usecase.ErrSlotConflict):
		response.Failure(w, http.StatusConflict, submission.Failure.Message, submission, response.NextActionReselectSlot)
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.Failure(w, http.StatusNotFound, submission.Failure.Message, submission, response.NextActionResetSelection)
	case errors.Is(err, usecase.ErrPracticeNotFound):
		response.Failure(w, http.StatusNotFound, submission.Failure.Message, submission, response.NextActionCheckConfig)
	case errors.Is(err, usecase.ErrTransport):
		response.Failure(w, http.StatusBadGateway, submission.Failure.Message, submission, response.NextActionRetry)
	default:
		response.Failure(w, http.StatusBadRequest, submission.Failure.Message, submission, response.NextActionFixInput)
	}
}
