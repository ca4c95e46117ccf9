package service

import "clinic-site-api/internal/domain/entity"

// Intent keys. Data-driven intents have no static responses.
const (
	IntentGreeting  = "greeting"
	IntentBooking   = "booking"
	IntentSchedule  = "schedule"
	IntentLocation  = "location"
	IntentInsurance = "insurance"
	IntentEmergency = "emergency"
	IntentInfo      = "info"
	IntentServices  = "services"
	IntentDoctors   = "doctors"
	IntentThanks    = "thanks"
	IntentWhatsApp  = "whatsapp"
)

var (
	replyBooking  = entity.QuickReply{Label: "📅 Reservar turno", Value: IntentBooking}
	replyInfo     = entity.QuickReply{Label: "ℹ️ Información general", Value: IntentInfo}
	replySchedule = entity.QuickReply{Label: "⏰ Horarios", Value: IntentSchedule}
	replyLocation = entity.QuickReply{Label: "📍 Ubicación", Value: IntentLocation}
	replyServices = entity.QuickReply{Label: "🏥 Servicios", Value: IntentServices}
	replyDoctors  = entity.QuickReply{Label: "👨‍⚕️ Médicos", Value: IntentDoctors}
	replyCoverage = entity.QuickReply{Label: "💳 Obras sociales", Value: IntentInsurance}
	replyWhatsApp = entity.QuickReply{Label: "📱 Contactar por WhatsApp", Value: IntentWhatsApp}
)

// DefaultIntents returns the Spanish intent table in match priority order.
func DefaultIntents() []entity.ChatIntent {
	return []entity.ChatIntent{
		{
			Key:      IntentGreeting,
			Patterns: []string{"hola", "buenos dias", "buenas tardes", "buenas noches", "hey", "hello", "hi"},
			ResponseTemplates: []string{
				"¡Hola! Soy el asistente virtual. ¿En qué puedo ayudarte hoy?",
				"¡Bienvenido! Estoy aquí para ayudarte. ¿Qué necesitas?",
			},
			QuickReplies: []entity.QuickReply{replyBooking, replyInfo, replySchedule, replyLocation},
		},
		{
			Key:      IntentBooking,
			Patterns: []string{"turno", "cita", "consulta", "reservar", "agendar", "appointment", "book"},
			ResponseTemplates: []string{
				"Perfecto, puedo ayudarte a reservar un turno. ¿Qué tipo de consulta necesitas?",
			},
			NextIntent: "booking_service",
		},
		{
			Key:      IntentSchedule,
			Patterns: []string{"horario", "hora", "cuando", "abierto", "schedule", "hours"},
		},
		{
			Key:      IntentLocation,
			Patterns: []string{"donde", "ubicacion", "direccion", "como llego", "location", "address"},
		},
		{
			Key:      IntentInsurance,
			Patterns: []string{"obra social", "prepaga", "seguro", "cobertura", "insurance"},
		},
		{
			Key:      IntentEmergency,
			Patterns: []string{"urgencia", "emergencia", "urgente", "emergency", "urgent"},
			ResponseTemplates: []string{
				"⚠️ Para emergencias médicas, te recomiendo contactar directamente por WhatsApp o llamar al centro médico.",
				"⚠️ Si es una emergencia, por favor comunícate inmediatamente por WhatsApp o teléfono.",
			},
			QuickReplies: []entity.QuickReply{replyWhatsApp},
		},
		{
			Key:               IntentInfo,
			Patterns:          []string{"info", "información", "servicios", "que hacen", "especialidades"},
			ResponseTemplates: []string{"¿Qué información necesitas?"},
			QuickReplies:      []entity.QuickReply{replyServices, replyDoctors, replyCoverage, replyLocation},
		},
		{
			Key:      IntentServices,
			Patterns: []string{"servicio", "tratamiento", "que ofrecen"},
		},
		{
			Key:      IntentDoctors,
			Patterns: []string{"medico", "doctor", "profesional", "especialista"},
		},
		{
			Key:      IntentThanks,
			Patterns: []string{"gracias", "muchas gracias", "thank", "thanks"},
			ResponseTemplates: []string{
				"¡De nada! ¿Hay algo más en lo que pueda ayudarte?",
				"¡Un placer ayudarte! Si necesitas algo más, aquí estoy.",
			},
			QuickReplies: []entity.QuickReply{replyBooking, replyWhatsApp},
		},
		{
			Key:               IntentWhatsApp,
			Patterns:          []string{"whatsapp", "wa", "chat", "hablar con alguien", "contactar"},
			ResponseTemplates: []string{"¡Por supuesto! Puedo conectarte con nuestro equipo por WhatsApp."},
		},
	}
}

// QuickReplyLabel maps a quick-reply value to the text shown as the visitor's message.
func QuickReplyLabel(value string) string {
	for _, r := range []entity.QuickReply{replyBooking, replyInfo, replySchedule, replyLocation, replyServices, replyDoctors, replyCoverage, replyWhatsApp} {
		if r.Value == value {
			return r.Label
		}
	}
	return value
}
