package entity

// DefaultBookingDuration is used when a request does not specify one.
const DefaultBookingDuration = 30

// PatientData is the identity a visitor enters in the booking form.
type PatientData struct {
	NationalID          string `json:"dni"`
	FirstName           string `json:"nombre"`
	LastName            string `json:"apellido"`
	Email               string `json:"email,omitempty"`
	Phone               string `json:"telefono,omitempty"`
	InsuranceProviderID string `json:"obra_social_id,omitempty"`
	Plan                string `json:"plan,omitempty"`
}

// BookingRequest carries the full doctor+date+slot tuple for one submission.
type BookingRequest struct {
	PracticeSlug    string      `json:"slug"`
	DoctorID        string      `json:"doctor_id"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	DurationMinutes int         `json:"duration,omitempty"`
	ServiceIDs      []string    `json:"service_ids,omitempty"`
	Patient         PatientData `json:"patient"`
	Notes           string      `json:"notas,omitempty"`
}

// FailureKind is the backend's structured booking error code.
type FailureKind string

const (
	FailureInvalidData      FailureKind = "INVALID_DATA"
	FailureSlotNotAvailable FailureKind = "SLOT_NOT_AVAILABLE"
	FailureGroupNotFound    FailureKind = "GROUP_NOT_FOUND"
	FailureDoctorNotFound   FailureKind = "DOCTOR_NOT_FOUND"
	FailureInternalError    FailureKind = "INTERNAL_ERROR"
)

// KnownFailureKind reports whether kind is one of the documented codes.
func KnownFailureKind(kind FailureKind) bool {
	switch kind {
	case FailureInvalidData, FailureSlotNotAvailable, FailureGroupNotFound, FailureDoctorNotFound, FailureInternalError:
		return true
	}
	return false
}

// AppointmentSummary echoes the booked appointment as the backend recorded it.
type AppointmentSummary struct {
	Date       string `json:"fecha"`
	Time       string `json:"hora"`
	DoctorName string `json:"doctor"`
}

// PatientSummary carries backend-assigned patient data.
type PatientSummary struct {
	MedicalRecordNumber *string `json:"historia_clinica"`
}

// BookingSuccess is issued exclusively by the backend.
type BookingSuccess struct {
	BookingID        string             `json:"turno_id"`
	ConfirmationCode string             `json:"confirmation_code"`
	Message          string             `json:"message,omitempty"`
	Appointment      AppointmentSummary `json:"turno"`
	Patient          PatientSummary     `json:"patient"`
}

// BookingFailure describes why a submission did not produce a booking.
type BookingFailure struct {
	Kind    FailureKind `json:"error"`
	Message string      `json:"message"`
}

// BookingOutcome is a tagged union: exactly one of Success or Failure is set.
type BookingOutcome struct {
	Success *BookingSuccess `json:"success,omitempty"`
	Failure *BookingFailure `json:"failure,omitempty"`
}

// Succeeded reports whether the outcome holds a confirmed booking.
func (o *BookingOutcome) Succeeded() bool {
	return o != nil && o.Success != nil
}

// FailureKind returns the failure code, or "" on success.
func (o *BookingOutcome) FailureKind() FailureKind {
	if o == nil || o.Failure == nil {
		return ""
	}
	return o.Failure.Kind
}

// NewFailureOutcome builds a failed outcome.
func NewFailureOutcome(kind FailureKind, message string) *BookingOutcome {
	return &BookingOutcome{Failure: &BookingFailure{Kind: kind, Message: message}}
}
