package entity

import "errors"

var (
	ErrInvalidTransition   = errors.New("booking step transition not allowed")
	ErrIncompleteSelection = errors.New("doctor, date and slot must all be selected")
)

// BookingStep is one screen of the booking wizard.
type BookingStep string

const (
	StepDoctor   BookingStep = "doctor"
	StepService  BookingStep = "service"
	StepDateTime BookingStep = "datetime"
	StepForm     BookingStep = "form"
	StepSuccess  BookingStep = "success"
)

// BookingFlow tracks the wizard selections. Any change upstream of the slot
// clears the slot so a stale selection can never be submitted.
type BookingFlow struct {
	Step      BookingStep `json:"step"`
	DoctorID  string      `json:"doctor_id,omitempty"`
	ServiceID string      `json:"service_id,omitempty"`
	Date      string      `json:"date,omitempty"`
	Slot      *TimeSlot   `json:"slot,omitempty"`

	serviceOptional bool
}

// NewBookingFlow starts a flow, skipping the steps that were pre-selected.
func NewBookingFlow(preDoctorID, preServiceID string) *BookingFlow {
	f := &BookingFlow{DoctorID: preDoctorID, ServiceID: preServiceID}
	f.Step = f.nextSelectionStep()
	return f
}

// WithoutService drops the service step, as on the single-form booking page.
func (f *BookingFlow) WithoutService() *BookingFlow {
	f.serviceOptional = true
	if f.Step == StepService {
		f.Step = f.nextSelectionStep()
	}
	return f
}

func (f *BookingFlow) nextSelectionStep() BookingStep {
	switch {
	case f.DoctorID == "":
		return StepDoctor
	case f.ServiceID == "" && !f.serviceOptional:
		return StepService
	default:
		return StepDateTime
	}
}

func (f *BookingFlow) SelectDoctor(doctorID string) error {
	if f.Step == StepSuccess || doctorID == "" {
		return ErrInvalidTransition
	}
	if doctorID != f.DoctorID {
		f.Date = ""
		f.Slot = nil
	}
	f.DoctorID = doctorID
	f.Step = f.nextSelectionStep()
	return nil
}

func (f *BookingFlow) SelectService(serviceID string) error {
	if f.Step == StepSuccess || serviceID == "" {
		return ErrInvalidTransition
	}
	f.ServiceID = serviceID
	f.Step = f.nextSelectionStep()
	return nil
}

func (f *BookingFlow) SelectDate(date string) error {
	if f.Step != StepDateTime || date == "" {
		return ErrInvalidTransition
	}
	if date != f.Date {
		f.Slot = nil
	}
	f.Date = date
	return nil
}

func (f *BookingFlow) SelectSlot(slot TimeSlot) error {
	if f.Step != StepDateTime || f.Date == "" || !slot.Available {
		return ErrInvalidTransition
	}
	f.Slot = &slot
	f.Step = StepForm
	return nil
}

// Back is only allowed from the patient form to the date/time step.
func (f *BookingFlow) Back() error {
	if f.Step != StepForm {
		return ErrInvalidTransition
	}
	f.Step = StepDateTime
	return nil
}

func (f *BookingFlow) Complete() error {
	if f.Step != StepForm {
		return ErrInvalidTransition
	}
	f.Step = StepSuccess
	return nil
}

// ResetSelection forces doctor re-selection after the doctor disappeared.
func (f *BookingFlow) ResetSelection() {
	f.DoctorID = ""
	f.Date = ""
	f.Slot = nil
	f.Step = StepDoctor
}

// Submission returns the atomic doctor+date+slot tuple to book.
func (f *BookingFlow) Submission() (doctorID, date string, slot TimeSlot, err error) {
	if f.DoctorID == "" || f.Date == "" || f.Slot == nil {
		return "", "", TimeSlot{}, ErrIncompleteSelection
	}
	return f.DoctorID, f.Date, *f.Slot, nil
}
