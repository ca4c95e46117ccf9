package service

import (
	"testing"

	"clinic-site-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentMatcher_Match(t *testing.T) {
	m := NewIntentMatcher(nil)

	cases := []struct {
		text string
		want string
	}{
		{"Hola, quiero reservar un turno", IntentGreeting},
		{"Necesito un turno", IntentBooking},
		{"¿Cuál es el horario?", IntentSchedule},
		{"  ¿Aceptan OBRA SOCIAL?  ", IntentInsurance},
		{"Es una urgencia", IntentEmergency},
		{"muchas gracias", IntentThanks},
		{"prefiero contactar a una persona", IntentWhatsApp},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			intent, ok := m.Match(tc.text)
			require.True(t, ok)
			assert.Equal(t, tc.want, intent.Key)
		})
	}
}

func TestIntentMatcher_NoMatch(t *testing.T) {
	m := NewIntentMatcher(nil)

	for _, text := range []string{"", "   ", "xyz"} {
		intent, ok := m.Match(text)
		assert.False(t, ok)
		assert.Nil(t, intent)
	}
}

func TestIntentMatcher_TableOrderWins(t *testing.T) {
	m := NewIntentMatcher([]entity.ChatIntent{
		{Key: "first", Patterns: []string{"abc"}},
		{Key: "second", Patterns: []string{"abcdef"}},
	})

	intent, ok := m.Match("abcdef")
	require.True(t, ok)
	assert.Equal(t, "first", intent.Key)
}

func TestIntentMatcher_CallerMutationDoesNotLeak(t *testing.T) {
	table := []entity.ChatIntent{{Key: "first", Patterns: []string{"abc"}}}
	m := NewIntentMatcher(table)
	table[0] = entity.ChatIntent{Key: "changed", Patterns: []string{"abc"}}

	intent, ok := m.Match("abc")
	require.True(t, ok)
	assert.Equal(t, "first", intent.Key)
}

func TestIntentMatcher_Lookup(t *testing.T) {
	m := NewIntentMatcher(nil)

	intent, ok := m.Lookup(IntentDoctors)
	require.True(t, ok)
	assert.Equal(t, IntentDoctors, intent.Key)

	_, ok = m.Lookup("booking_service")
	assert.False(t, ok)
}

func TestQuickReplyLabel(t *testing.T) {
	assert.Equal(t, "📅 Reservar turno", QuickReplyLabel(IntentBooking))
	assert.Equal(t, "💳 Obras sociales", QuickReplyLabel(IntentInsurance))
	assert.Equal(t, "unknown", QuickReplyLabel("unknown"))
}
