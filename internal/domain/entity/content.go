package entity

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// ContentSnapshot is the aggregated read model of a practice's public website.
// A snapshot is immutable once built; caches replace it wholesale.
type ContentSnapshot struct {
	Group     MedicalGroup          `json:"group"`
	Website   Website               `json:"website"`
	Sections  []Section             `json:"sections"`
	Services  []Service             `json:"services"`
	Doctors   []Doctor              `json:"doctors"`
	Insurance []Insurance           `json:"insurance"`
	Schedules []WeeklyScheduleEntry `json:"schedules"`
	Theme     Theme                 `json:"theme"`
	FetchedAt time.Time             `json:"fetched_at"`
}

type MedicalGroup struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	LogoURL   *string      `json:"logo_url"`
	Specialty *string      `json:"specialty"`
	Addresses *TextContent `json:"addresses"`
	Email     *string      `json:"email"`
}

type Website struct {
	Theme   *Theme   `json:"theme"`
	Contact *Contact `json:"contact"`
	Socials *Socials `json:"socials"`
	Widgets *Widgets `json:"widgets"`
	SEO     *SEO     `json:"seo"`
}

type Theme struct {
	Palette        string  `json:"palette,omitempty"`
	PrimaryColor   string  `json:"primary_color,omitempty"`
	SecondaryColor string  `json:"secondary_color,omitempty"`
	FontFamily     *string `json:"font_family"`
}

// DefaultTheme is applied when the backend sends no theme.
var DefaultTheme = Theme{
	Palette:        "blue",
	PrimaryColor:   "hsl(210, 100%, 50%)",
	SecondaryColor: "hsl(210, 100%, 40%)",
}

type Contact struct {
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

type Socials struct {
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	Twitter   *string `json:"twitter"`
	LinkedIn  *string `json:"linkedin"`
	YouTube   *string `json:"youtube"`
}

type SEO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Keywords    *string `json:"keywords"`
}

// Widgets accepts both the flat and the nested whatsapp/chatbot shapes.
type Widgets struct {
	WhatsAppEnabled *bool           `json:"whatsapp_enabled,omitempty"`
	WhatsAppNumber  *string         `json:"whatsapp_number,omitempty"`
	WhatsAppMessage *string         `json:"whatsapp_message,omitempty"`
	WhatsApp        *WhatsAppWidget `json:"whatsapp,omitempty"`
	ChatbotEnabled  *bool           `json:"chatbot_enabled,omitempty"`
	Chatbot         *ChatbotWidget  `json:"chatbot,omitempty"`
}

type WhatsAppWidget struct {
	Enabled bool    `json:"enabled"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
}

type ChatbotWidget struct {
	Enabled        bool   `json:"enabled"`
	WelcomeMessage string `json:"welcome_message,omitempty"`
}

// WhatsAppSettings resolves the hand-off channel, preferring the nested shape.
func (w *Widgets) WhatsAppSettings() (enabled bool, phone, message string) {
	if w == nil {
		return false, "", ""
	}
	if w.WhatsApp != nil {
		enabled = w.WhatsApp.Enabled
		phone = deref(w.WhatsApp.Phone)
		message = deref(w.WhatsApp.Message)
	} else {
		if w.WhatsAppEnabled != nil {
			enabled = *w.WhatsAppEnabled
		}
		phone = deref(w.WhatsAppNumber)
		message = deref(w.WhatsAppMessage)
	}
	return enabled, phone, message
}

type Section struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OrderIndex int             `json:"order_index"`
	IsActive   bool            `json:"is_active"`
	Content    json.RawMessage `json:"content"`
}

func (s *Section) UnmarshalJSON(data []byte) error {
	type alias Section
	a := alias{Type: "about", IsActive: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Type == "" {
		a.Type = "about"
	}
	*s = Section(a)
	return nil
}

type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	OrderIndex  int     `json:"order_index"`
	IsActive    bool    `json:"is_active"`
}

func (s *Service) UnmarshalJSON(data []byte) error {
	type alias Service
	a := alias{IsActive: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Service(a)
	return nil
}

type Doctor struct {
	ID                  string   `json:"id"`
	Name                string   `json:"nombre"`
	Specialty           *string  `json:"especialidad"`
	AllowedInsuranceIDs []string `json:"allowed_obras_sociales"`
	PhotoURL            *string  `json:"photo_url"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	Bio                 string   `json:"bio"`
	IsActive            bool     `json:"is_active"`
}

func (d *Doctor) UnmarshalJSON(data []byte) error {
	type alias Doctor
	a := alias{IsActive: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = Doctor(a)
	return nil
}

type Insurance struct {
	ID    string   `json:"id"`
	Name  string   `json:"obra_social"`
	Plans []string `json:"planes"`
}

// Normalize fills the defaults for optional fields the backend may omit.
func (c *ContentSnapshot) Normalize() {
	if c.Sections == nil {
		c.Sections = []Section{}
	}
	if c.Services == nil {
		c.Services = []Service{}
	}
	if c.Doctors == nil {
		c.Doctors = []Doctor{}
	}
	if c.Insurance == nil {
		c.Insurance = []Insurance{}
	}
	if c.Schedules == nil {
		c.Schedules = []WeeklyScheduleEntry{}
	}
	if c.Website.Theme != nil {
		c.Theme = *c.Website.Theme
	} else {
		c.Theme = DefaultTheme
	}
}

// FindDoctor returns the doctor with id, or nil.
func (c *ContentSnapshot) FindDoctor(id string) *Doctor {
	for i := range c.Doctors {
		if c.Doctors[i].ID == id {
			return &c.Doctors[i]
		}
	}
	return nil
}

// SchedulesForDoctor keeps the entries of one doctor in their original order.
func (c *ContentSnapshot) SchedulesForDoctor(doctorID string) []WeeklyScheduleEntry {
	var out []WeeklyScheduleEntry
	for _, s := range c.Schedules {
		if s.DoctorID == doctorID {
			out = append(out, s)
		}
	}
	return out
}

func (c *ContentSnapshot) ActiveServices() []Service {
	var out []Service
	for _, s := range c.Services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}

func (c *ContentSnapshot) ActiveDoctors() []Doctor {
	var out []Doctor
	for _, d := range c.Doctors {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out
}

// Specialties lists distinct doctor specialties in first-seen order.
func (c *ContentSnapshot) Specialties() []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range c.Doctors {
		if d.Specialty == nil || *d.Specialty == "" || seen[*d.Specialty] {
			continue
		}
		seen[*d.Specialty] = true
		out = append(out, *d.Specialty)
	}
	return out
}

// DoctorsBySpecialty returns all doctors when specialty is empty.
func (c *ContentSnapshot) DoctorsBySpecialty(specialty string) []Doctor {
	if specialty == "" {
		return c.Doctors
	}
	var out []Doctor
	for _, d := range c.Doctors {
		if d.Specialty != nil && *d.Specialty == specialty {
			out = append(out, d)
		}
	}
	return out
}

// InsuranceByName finds an insurance provider by its display name, ignoring case.
func (c *ContentSnapshot) InsuranceByName(name string) *Insurance {
	name = strings.TrimSpace(name)
	for i := range c.Insurance {
		if strings.EqualFold(c.Insurance[i].Name, name) {
			return &c.Insurance[i]
		}
	}
	return nil
}

// SortedSections returns active sections by order_index.
func (c *ContentSnapshot) SortedSections() []Section {
	var out []Section
	for _, s := range c.Sections {
		if s.IsActive {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

// TextContent is a field that arrives either as a plain string or as a structured object.
type TextContent struct {
	Text       string
	Structured *StructuredText
	Items      []TextContent
}

type StructuredText struct {
	Text        string          `json:"text,omitempty"`
	Label       string          `json:"label,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

func (t *TextContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = TextContent{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TextContent{Text: s}
	case '[':
		var items []TextContent
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*t = TextContent{Items: items}
	case '{':
		var st StructuredText
		if err := json.Unmarshal(data, &st); err != nil {
			return err
		}
		st.Raw = append(json.RawMessage(nil), data...)
		*t = TextContent{Structured: &st}
	default:
		*t = TextContent{Text: string(data)}
	}
	return nil
}

func (t TextContent) MarshalJSON() ([]byte, error) {
	switch {
	case t.Structured != nil && len(t.Structured.Raw) > 0:
		return t.Structured.Raw, nil
	case t.Structured != nil:
		return json.Marshal(t.Structured)
	case t.Items != nil:
		return json.Marshal(t.Items)
	}
	return json.Marshal(t.Text)
}

// String projects the value to display text.
func (t *TextContent) String() string {
	if t == nil {
		return ""
	}
	if t.Items != nil {
		parts := make([]string, 0, len(t.Items))
		for i := range t.Items {
			if s := t.Items[i].String(); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	if t.Structured == nil {
		return t.Text
	}
	for _, candidate := range []string{t.Structured.Text, t.Structured.Label, t.Structured.Title, t.Structured.Description} {
		if candidate != "" {
			return candidate
		}
	}
	return string(t.Structured.Raw)
}

// IsEmpty reports whether the projection has no text.
func (t *TextContent) IsEmpty() bool {
	return strings.TrimSpace(t.String()) == ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
