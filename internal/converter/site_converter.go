package converter

import (
	"encoding/json"
	"net/url"
	"strings"

	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
)

// WebsiteToResponse converts a ContentSnapshot to WebsiteResponse DTO.
// Only active sections, services and doctors are exposed; specialty narrows the doctors.
func WebsiteToResponse(s *entity.ContentSnapshot, specialty string, handoffFallback string) *dto.WebsiteResponse {
	if s == nil {
		return nil
	}

	response := &dto.WebsiteResponse{
		Group: dto.GroupResponse{
			ID:        s.Group.ID,
			Name:      s.Group.Name,
			Slug:      s.Group.Slug,
			LogoURL:   deref(s.Group.LogoURL),
			Specialty: deref(s.Group.Specialty),
			Address:   s.Group.Addresses.String(),
			Email:     deref(s.Group.Email),
		},
		Theme: dto.ThemeResponse{
			Palette:        s.Theme.Palette,
			PrimaryColor:   s.Theme.PrimaryColor,
			SecondaryColor: s.Theme.SecondaryColor,
			FontFamily:     deref(s.Theme.FontFamily),
		},
		Sections:    make([]dto.SectionResponse, 0, len(s.Sections)),
		Services:    []dto.ServiceResponse{},
		Doctors:     []dto.DoctorResponse{},
		Specialties: s.Specialties(),
		Insurance:   make([]dto.InsuranceResponse, 0, len(s.Insurance)),
		Schedules:   make([]dto.ScheduleResponse, 0, len(s.Schedules)),
	}
	if response.Specialties == nil {
		response.Specialties = []string{}
	}

	if c := s.Website.Contact; c != nil {
		response.Contact = dto.ContactResponse{Phone: deref(c.Phone), Email: deref(c.Email), Address: deref(c.Address)}
	}
	response.Socials = socialsToMap(s.Website.Socials)
	if seo := s.Website.SEO; seo != nil {
		response.SEO = &dto.SEOResponse{Title: deref(seo.Title), Description: deref(seo.Description), Keywords: deref(seo.Keywords)}
	}
	if w := s.Website.Widgets; w != nil {
		response.WhatsApp = WhatsAppToResponse(w, handoffFallback)
		response.Chatbot = (w.ChatbotEnabled != nil && *w.ChatbotEnabled) || (w.Chatbot != nil && w.Chatbot.Enabled)
	}

	for _, section := range s.SortedSections() {
		response.Sections = append(response.Sections, dto.SectionResponse{
			ID:         section.ID,
			Type:       section.Type,
			OrderIndex: section.OrderIndex,
			Content:    rawContent(section.Content),
		})
	}
	for _, svc := range s.ActiveServices() {
		response.Services = append(response.Services, dto.ServiceResponse{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: deref(svc.Description),
			Icon:        deref(svc.Icon),
		})
	}
	for _, d := range s.DoctorsBySpecialty(specialty) {
		if !d.IsActive {
			continue
		}
		response.Doctors = append(response.Doctors, DoctorToResponse(&d))
	}
	for _, ins := range s.Insurance {
		plans := ins.Plans
		if plans == nil {
			plans = []string{}
		}
		response.Insurance = append(response.Insurance, dto.InsuranceResponse{ID: ins.ID, Name: ins.Name, Plans: plans})
	}
	for _, e := range s.Schedules {
		response.Schedules = append(response.Schedules, ScheduleToResponse(&e))
	}

	return response
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(d *entity.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:                  d.ID,
		Name:                d.Name,
		Specialty:           deref(d.Specialty),
		AllowedInsuranceIDs: d.AllowedInsuranceIDs,
		PhotoURL:            deref(d.PhotoURL),
		Bio:                 d.Bio,
	}
}

// ScheduleToResponse converts a WeeklyScheduleEntry to ScheduleResponse DTO
func ScheduleToResponse(e *entity.WeeklyScheduleEntry) dto.ScheduleResponse {
	response := dto.ScheduleResponse{
		DoctorID:   e.DoctorID,
		DoctorName: e.DoctorName,
		DayOfWeek:  e.DayOfWeek,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Room:       deref(e.RoomName),
	}
	if e.DayOfWeek >= 0 && e.DayOfWeek < len(entity.DayNames) {
		response.DayName = entity.DayNames[e.DayOfWeek]
	}
	return response
}

// WhatsAppToResponse returns nil when the hand-off channel is disabled or has no number.
func WhatsAppToResponse(w *entity.Widgets, fallbackMessage string) *dto.WhatsAppResponse {
	enabled, phone, message := w.WhatsAppSettings()
	if !enabled || phone == "" {
		return nil
	}
	if message == "" {
		message = fallbackMessage
	}
	return &dto.WhatsAppResponse{Phone: phone, Message: message, URL: WhatsAppURL(phone, message)}
}

// WhatsAppURL builds the wa.me deep link; only the digits of phone are kept.
func WhatsAppURL(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String() + "?text=" + url.QueryEscape(message)
}

func socialsToMap(s *entity.Socials) map[string]string {
	if s == nil {
		return nil
	}
	out := map[string]string{}
	for name, value := range map[string]*string{
		"facebook":  s.Facebook,
		"instagram": s.Instagram,
		"twitter":   s.Twitter,
		"linkedin":  s.LinkedIn,
		"youtube":   s.YouTube,
	} {
		if v := deref(value); v != "" {
			out[name] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func rawContent(raw json.RawMessage) interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
