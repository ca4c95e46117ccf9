package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"clinic-site-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	listLimit        = 5
	fallbackMessage  = "Disculpa, no estoy seguro de entender. ¿Podrías reformular tu pregunta?"
	defaultGroupName = "nuestro centro médico"
)

// SnapshotProvider returns the freshest content snapshot of one practice.
// Implementations may return a stale snapshot together with a nil error.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*entity.ContentSnapshot, error)
}

// ResponseComposer turns a matched intent into bot messages.
type ResponseComposer struct {
	log  *logrus.Logger
	now  func() time.Time
	pick func(templates []string) string
}

func NewResponseComposer(log *logrus.Logger) *ResponseComposer {
	return &ResponseComposer{
		log: log,
		now: time.Now,
		pick: func(templates []string) string {
			return templates[rand.Intn(len(templates))]
		},
	}
}

// WithTemplateChooser replaces the random template choice, mostly for tests.
func (c *ResponseComposer) WithTemplateChooser(pick func([]string) string) *ResponseComposer {
	c.pick = pick
	return c
}

// Compose renders the reply for intent and advances chat.CurrentIntent.
// A nil intent yields the clarifying fallback. Data-driven intents read from
// snapshots; a missing snapshot degrades to the contact-us reply instead of failing.
func (c *ResponseComposer) Compose(ctx context.Context, intent *entity.ChatIntent, chat *entity.ChatContext, snapshots SnapshotProvider) []entity.ChatMessage {
	if chat != nil {
		chat.CurrentIntent = ""
		if intent != nil {
			chat.CurrentIntent = intent.Key
			if intent.NextIntent != "" {
				chat.CurrentIntent = intent.NextIntent
			}
		}
	}
	if intent == nil {
		return []entity.ChatMessage{c.Fallback()}
	}

	switch intent.Key {
	case IntentSchedule, IntentLocation, IntentInsurance, IntentServices, IntentDoctors:
		snapshot := c.snapshot(ctx, snapshots)
		return []entity.ChatMessage{c.composeData(intent.Key, snapshot)}
	case IntentWhatsApp:
		msg := c.message(c.pick(intent.ResponseTemplates), entity.MessageHandoff, intent.QuickReplies)
		return []entity.ChatMessage{msg}
	}

	if len(intent.ResponseTemplates) == 0 {
		return []entity.ChatMessage{c.Fallback()}
	}
	msgType := entity.MessageText
	if len(intent.QuickReplies) > 0 {
		msgType = entity.MessageQuickReplies
	}
	return []entity.ChatMessage{c.message(c.pick(intent.ResponseTemplates), msgType, intent.QuickReplies)}
}

// Fallback is the reply for text no intent matched.
func (c *ResponseComposer) Fallback() entity.ChatMessage {
	return c.message(fallbackMessage, entity.MessageText, []entity.QuickReply{
		replyBooking,
		{Label: "ℹ️ Información", Value: IntentInfo},
		{Label: "📱 Hablar con alguien", Value: IntentWhatsApp},
	})
}

// Welcome greets a new session. A configured chatbot welcome text replaces the default.
func (c *ResponseComposer) Welcome(snapshot *entity.ContentSnapshot) entity.ChatMessage {
	groupName := defaultGroupName
	content := ""
	if snapshot != nil {
		if snapshot.Group.Name != "" {
			groupName = snapshot.Group.Name
		}
		if w := snapshot.Website.Widgets; w != nil && w.Chatbot != nil {
			content = strings.TrimSpace(w.Chatbot.WelcomeMessage)
		}
	}
	if content == "" {
		content = fmt.Sprintf("¡Hola! Bienvenido a %s. Soy tu asistente virtual y estoy aquí para ayudarte. ¿En qué puedo asistirte hoy?", groupName)
	}
	return c.message(content, entity.MessageQuickReplies, []entity.QuickReply{
		replyBooking, replyInfo, replySchedule, replyWhatsApp,
	})
}

// UserMessage records what the visitor sent.
func (c *ResponseComposer) UserMessage(content string) entity.ChatMessage {
	msg := c.message(content, entity.MessageText, nil)
	msg.Sender = entity.SenderUser
	return msg
}

func (c *ResponseComposer) snapshot(ctx context.Context, snapshots SnapshotProvider) *entity.ContentSnapshot {
	if snapshots == nil {
		return nil
	}
	snapshot, err := snapshots.Snapshot(ctx)
	if err != nil {
		c.log.Warnf("Failed to load content for chat reply: %+v", err)
		return nil
	}
	return snapshot
}

func (c *ResponseComposer) composeData(key string, s *entity.ContentSnapshot) entity.ChatMessage {
	switch key {
	case IntentSchedule:
		return c.scheduleReply(s)
	case IntentLocation:
		return c.locationReply(s)
	case IntentInsurance:
		return c.insuranceReply(s)
	case IntentServices:
		return c.servicesReply(s)
	default:
		return c.doctorsReply(s)
	}
}

func (c *ResponseComposer) contactUs(content string, replies ...entity.QuickReply) entity.ChatMessage {
	return c.message(content, entity.MessageQuickReplies, append([]entity.QuickReply{replyWhatsApp}, replies...))
}

func (c *ResponseComposer) scheduleReply(s *entity.ContentSnapshot) entity.ChatMessage {
	if s == nil || len(s.Schedules) == 0 {
		return c.contactUs("Para conocer nuestros horarios de atención, te recomiendo contactarnos directamente.", replyBooking)
	}

	byDay := map[int][]string{}
	for _, e := range s.Schedules {
		if e.DayOfWeek < 0 || e.DayOfWeek >= len(entity.DayNames) {
			continue
		}
		byDay[e.DayOfWeek] = append(byDay[e.DayOfWeek], e.StartTime+" - "+e.EndTime)
	}
	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	var b strings.Builder
	b.WriteString("📅 Nuestros horarios de atención:\n\n")
	for _, d := range days {
		fmt.Fprintf(&b, "%s: %s\n", entity.DayNames[d], strings.Join(byDay[d], ", "))
	}

	return c.message(b.String(), entity.MessageQuickReplies, []entity.QuickReply{
		replyBooking,
		{Label: "📱 Contactar", Value: IntentWhatsApp},
	})
}

func (c *ResponseComposer) locationReply(s *entity.ContentSnapshot) entity.ChatMessage {
	replies := []entity.QuickReply{replyBooking, replyWhatsApp}

	var address, phone, email string
	if s != nil {
		if !s.Group.Addresses.IsEmpty() {
			address = strings.TrimSpace(s.Group.Addresses.String())
		}
		if s.Group.Email != nil {
			email = *s.Group.Email
		}
		if contact := s.Website.Contact; contact != nil {
			phone = deref(contact.Phone)
			if email == "" {
				email = deref(contact.Email)
			}
		}
	}

	if address == "" && phone == "" && email == "" {
		return c.message("Para conocer nuestra ubicación y datos de contacto, por favor comunícate con nosotros.", entity.MessageQuickReplies, replies)
	}

	var b strings.Builder
	b.WriteString("📍 Información de contacto:\n\n")
	if address != "" {
		fmt.Fprintf(&b, "Dirección: %s\n", address)
	}
	if phone != "" {
		fmt.Fprintf(&b, "📞 Teléfono: %s\n", phone)
	}
	if email != "" {
		fmt.Fprintf(&b, "📧 Email: %s\n", email)
	}
	return c.message(b.String(), entity.MessageQuickReplies, replies)
}

func (c *ResponseComposer) insuranceReply(s *entity.ContentSnapshot) entity.ChatMessage {
	if s == nil || len(s.Insurance) == 0 {
		return c.contactUs("Para consultar sobre obras sociales y coberturas aceptadas, te recomiendo contactarnos directamente.")
	}

	var b strings.Builder
	b.WriteString("💳 Obras sociales que aceptamos:\n\n")
	for _, ins := range s.Insurance {
		b.WriteString("• " + ins.Name)
		if len(ins.Plans) > 0 {
			b.WriteString(" (" + strings.Join(ins.Plans, ", ") + ")")
		}
		b.WriteString("\n")
	}
	return c.message(b.String(), entity.MessageQuickReplies, []entity.QuickReply{
		replyBooking,
		{Label: "📱 Contactar", Value: IntentWhatsApp},
	})
}

func (c *ResponseComposer) servicesReply(s *entity.ContentSnapshot) entity.ChatMessage {
	var active []entity.Service
	if s != nil {
		active = s.ActiveServices()
	}
	if len(active) == 0 {
		return c.contactUs("Para conocer nuestros servicios, te recomiendo contactarnos directamente.")
	}

	var b strings.Builder
	b.WriteString("🏥 Nuestros servicios:\n\n")
	for i, svc := range active {
		if i == listLimit {
			break
		}
		b.WriteString("• " + svc.Name)
		if desc := deref(svc.Description); desc != "" {
			b.WriteString("\n  " + desc)
		}
		b.WriteString("\n")
	}
	if len(active) > listLimit {
		b.WriteString("\n...y más servicios disponibles.")
	}
	return c.message(b.String(), entity.MessageQuickReplies, []entity.QuickReply{
		replyBooking,
		{Label: "👨‍⚕️ Ver médicos", Value: IntentDoctors},
	})
}

func (c *ResponseComposer) doctorsReply(s *entity.ContentSnapshot) entity.ChatMessage {
	var active []entity.Doctor
	if s != nil {
		active = s.ActiveDoctors()
	}
	if len(active) == 0 {
		return c.contactUs("Para conocer a nuestros profesionales, te recomiendo contactarnos directamente.")
	}

	var b strings.Builder
	b.WriteString("👨‍⚕️ Nuestros profesionales:\n\n")
	for i, d := range active {
		if i == listLimit {
			break
		}
		b.WriteString("• Dr./Dra. " + d.Name)
		if specialty := deref(d.Specialty); specialty != "" {
			b.WriteString(" - " + specialty)
		}
		b.WriteString("\n")
	}
	if len(active) > listLimit {
		b.WriteString("\n...y más profesionales en nuestro equipo.")
	}
	return c.message(b.String(), entity.MessageQuickReplies, []entity.QuickReply{
		replyBooking,
		{Label: "🏥 Ver servicios", Value: IntentServices},
	})
}

func (c *ResponseComposer) message(content string, msgType entity.MessageType, replies []entity.QuickReply) entity.ChatMessage {
	return entity.ChatMessage{
		ID:           uuid.NewString(),
		Sender:       entity.SenderBot,
		Content:      content,
		Timestamp:    c.now(),
		Type:         msgType,
		QuickReplies: replies,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
