package converter

import (
	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
)

// AvailabilityToResponse converts an AvailableSlotsResult to AvailableSlotsResponse DTO
func AvailabilityToResponse(r *entity.AvailableSlotsResult) *dto.AvailableSlotsResponse {
	if r == nil {
		return nil
	}

	slots := make([]dto.SlotResponse, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = dto.SlotResponse{Start: s.Start, End: s.End, Available: s.Available}
	}

	return &dto.AvailableSlotsResponse{
		DoctorID:       r.Doctor.ID,
		DoctorName:     r.Doctor.Name,
		Date:           r.Date,
		Duration:       r.DurationMinutes,
		Status:         string(r.Status),
		Message:        r.Message,
		AvailableCount: r.AvailableCount(),
		Slots:          slots,
	}
}
