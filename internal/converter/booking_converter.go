package converter

import (
	"strings"

	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
)

// BookingRequestToEntity trims the request fields. Phone normalization and
// insurance resolution happen in the usecase.
func BookingRequestToEntity(slug string, req *dto.CreateBookingRequest) *entity.BookingRequest {
	return &entity.BookingRequest{
		PracticeSlug:    slug,
		DoctorID:        trim(req.DoctorID),
		Date:            trim(req.Date),
		Time:            trim(req.Time),
		DurationMinutes: req.Duration,
		ServiceIDs:      req.ServiceIDs,
		Notes:           trim(req.Notes),
		Patient: entity.PatientData{
			NationalID:          trim(req.Patient.NationalID),
			FirstName:           trim(req.Patient.FirstName),
			LastName:            trim(req.Patient.LastName),
			Email:               trim(req.Patient.Email),
			Phone:               trim(req.Patient.Phone),
			InsuranceProviderID: trim(req.Patient.InsuranceID),
			Plan:                trim(req.Patient.Plan),
		},
	}
}

// TrimmedBookingRequest returns a copy with surrounding whitespace removed,
// so that blank fields fail validation.
func TrimmedBookingRequest(req *dto.CreateBookingRequest) *dto.CreateBookingRequest {
	trimmed := *req
	trimmed.DoctorID = trim(req.DoctorID)
	trimmed.Date = trim(req.Date)
	trimmed.Time = trim(req.Time)
	trimmed.Patient.NationalID = trim(req.Patient.NationalID)
	trimmed.Patient.FirstName = trim(req.Patient.FirstName)
	trimmed.Patient.LastName = trim(req.Patient.LastName)
	trimmed.Patient.Email = trim(req.Patient.Email)
	return &trimmed
}

// OutcomeToConfirmation converts a successful BookingOutcome to BookingConfirmationResponse DTO
func OutcomeToConfirmation(o *entity.BookingOutcome) *dto.BookingConfirmationResponse {
	if !o.Succeeded() {
		return nil
	}
	s := o.Success
	return &dto.BookingConfirmationResponse{
		BookingID:           s.BookingID,
		ConfirmationCode:    s.ConfirmationCode,
		Message:             s.Message,
		Date:                s.Appointment.Date,
		Time:                s.Appointment.Time,
		DoctorName:          s.Appointment.DoctorName,
		MedicalRecordNumber: deref(s.Patient.MedicalRecordNumber),
	}
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
