package dto

// Request DTOs

type AvailableSlotsRequest struct {
	Slug     string `validate:"required"`
	DoctorID string `validate:"required"`
	Date     string `validate:"required,date_ymd"` // Format: YYYY-MM-DD
	Duration int    `validate:"omitempty,gte=5,lte=240"`
}

// Response DTOs

type SlotResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type AvailableSlotsResponse struct {
	DoctorID       string         `json:"doctor_id"`
	DoctorName     string         `json:"doctor_name"`
	Date           string         `json:"date"`
	Duration       int            `json:"duration"`
	Status         string         `json:"status"`
	Message        string         `json:"message,omitempty"`
	AvailableCount int            `json:"available_count"`
	Slots          []SlotResponse `json:"slots"`
}
