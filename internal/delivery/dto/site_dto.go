package dto

// Response DTOs

type WebsiteResponse struct {
	Group       GroupResponse       `json:"group"`
	Theme       ThemeResponse       `json:"theme"`
	Contact     ContactResponse     `json:"contact"`
	Socials     map[string]string   `json:"socials,omitempty"`
	SEO         *SEOResponse        `json:"seo,omitempty"`
	WhatsApp    *WhatsAppResponse   `json:"whatsapp,omitempty"`
	Chatbot     bool                `json:"chatbot_enabled"`
	Sections    []SectionResponse   `json:"sections"`
	Services    []ServiceResponse   `json:"services"`
	Doctors     []DoctorResponse    `json:"doctors"`
	Specialties []string            `json:"specialties"`
	Insurance   []InsuranceResponse `json:"insurance"`
	Schedules   []ScheduleResponse  `json:"schedules"`
}

type GroupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	LogoURL   string `json:"logo_url,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
}

type ThemeResponse struct {
	Palette        string `json:"palette,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty"`
}

type ContactResponse struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type SEOResponse struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}

type WhatsAppResponse struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

type SectionResponse struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OrderIndex int         `json:"order_index"`
	Content    interface{} `json:"content,omitempty"`
}

type ServiceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type DoctorResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"nombre"`
	Specialty           string   `json:"especialidad,omitempty"`
	AllowedInsuranceIDs []string `json:"allowed_obras_sociales,omitempty"`
	PhotoURL            string   `json:"photo_url,omitempty"`
	Bio                 string   `json:"bio,omitempty"`
}

type InsuranceResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"obra_social"`
	Plans []string `json:"planes"`
}

type ScheduleResponse struct {
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	DayOfWeek  int    `json:"dia_semana"`
	DayName    string `json:"dia"`
	StartTime  string `json:"hora_inicio"` // Format: HH:MM
	EndTime    string `json:"hora_fin"`    // Format: HH:MM
	Room       string `json:"consultorio,omitempty"`
}
