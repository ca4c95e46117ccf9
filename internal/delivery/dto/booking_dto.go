package dto

// Request DTOs

// PatientRequest fields are declared in the order they are validated.
type PatientRequest struct {
	NationalID    string `json:"dni" validate:"required"`
	FirstName     string `json:"nombre" validate:"required"`
	LastName      string `json:"apellido" validate:"required"`
	Email         string `json:"email" validate:"omitempty,basic_email"`
	Phone         string `json:"telefono"`
	InsuranceID   string `json:"obra_social_id"`
	InsuranceName string `json:"obra_social"`
	Plan          string `json:"plan"`
}

type CreateBookingRequest struct {
	Patient    PatientRequest `json:"patient"`
	DoctorID   string         `json:"doctor_id" validate:"required"`
	Date       string         `json:"date" validate:"required,date_ymd"` // Format: YYYY-MM-DD
	Time       string         `json:"time" validate:"required,clock"`    // Format: HH:MM
	Duration   int            `json:"duration" validate:"omitempty,gte=5,lte=240"`
	ServiceIDs []string       `json:"service_ids"`
	Notes      string         `json:"notas"`
}

// Response DTOs

type BookingConfirmationResponse struct {
	BookingID           string `json:"turno_id"`
	ConfirmationCode    string `json:"confirmation_code"`
	Message             string `json:"message,omitempty"`
	Date                string `json:"fecha"`
	Time                string `json:"hora"`
	DoctorName          string `json:"doctor"`
	MedicalRecordNumber string `json:"historia_clinica,omitempty"`
}

type BookingFailureResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BookingRecoveryResponse tells the client what to do after a failure.
type BookingRecoveryResponse struct {
	Action       string                  `json:"action"`
	Step         string                  `json:"step"`
	Availability *AvailableSlotsResponse `json:"availability,omitempty"`
}

type BookingSubmissionResponse struct {
	CorrelationID string                       `json:"correlation_id"`
	Confirmation  *BookingConfirmationResponse `json:"confirmation,omitempty"`
	Failure       *BookingFailureResponse      `json:"failure,omitempty"`
	Recovery      *BookingRecoveryResponse     `json:"recovery,omitempty"`
	Patient       PatientRequest               `json:"patient"`
}
