package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"clinic-site-api/config"
	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChatConfig = config.ChatConfig{
	HandoffDelay:    1500 * time.Millisecond,
	HandoffFallback: "Hola, me gustaría hacer una consulta",
}

func newTestChat(content *fakeSnapshots, sessions *fakeSessionRepo) ChatUsecase {
	composer := service.NewResponseComposer(quietLogger()).WithTemplateChooser(func(t []string) string { return t[0] })
	u := NewChatUsecase(
		quietLogger(),
		content,
		sessions,
		service.NewIntentMatcher(nil),
		composer,
		nil,
		testChatConfig,
	).(*chatUsecase)
	u.now = func() time.Time { return testNow }
	return u
}

func startTestSession(t *testing.T, u ChatUsecase) *dto.ChatSessionResponse {
	t.Helper()
	session, err := u.StartSession(context.Background(), "clinica-del-sol")
	require.NoError(t, err)
	return session
}

func TestChat_StartSessionGreets(t *testing.T) {
	sessions := newFakeSessionRepo()
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, sessions)

	session := startTestSession(t, u)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "clinica-del-sol", session.Slug)
	require.Len(t, session.Messages, 1)
	assert.Contains(t, session.Messages[0].Content, "Clínica del Sol")
	assert.Equal(t, "bot", session.Messages[0].Sender)
	assert.Len(t, session.Messages[0].QuickReplies, 4)
	assert.Contains(t, sessions.sessions, session.ID)
}

func TestChat_StartSessionUnknownPractice(t *testing.T) {
	u := newTestChat(&fakeSnapshots{err: repository.ErrNotFound}, newFakeSessionRepo())

	_, err := u.StartSession(context.Background(), "nadie")
	assert.ErrorIs(t, err, ErrPracticeNotFound)
}

func TestChat_StartSessionWithoutContentUsesDefaultWelcome(t *testing.T) {
	u := newTestChat(&fakeSnapshots{err: errors.New("backend down")}, newFakeSessionRepo())

	session := startTestSession(t, u)

	require.Len(t, session.Messages, 1)
	assert.Contains(t, session.Messages[0].Content, "nuestro centro médico")
}

func TestChat_SendTextMatchesIntent(t *testing.T) {
	sessions := newFakeSessionRepo()
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, sessions)
	session := startTestSession(t, u)

	reply, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{Text: "  Hola!  "})
	require.NoError(t, err)

	assert.Equal(t, service.IntentGreeting, reply.Intent)
	require.Len(t, reply.Messages, 2)
	assert.Equal(t, "user", reply.Messages[0].Sender)
	assert.Equal(t, "Hola!", reply.Messages[0].Content)
	assert.Equal(t, "¡Hola! Soy el asistente virtual. ¿En qué puedo ayudarte hoy?", reply.Messages[1].Content)
	assert.Equal(t, string(entity.MessageQuickReplies), reply.Messages[1].Type)
	assert.Nil(t, reply.Handoff)

	stored, err := u.GetSession(context.Background(), "clinica-del-sol", session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 3)
	assert.Equal(t, service.IntentGreeting, stored.CurrentIntent)
}

func TestChat_FollowUpIntentIsStored(t *testing.T) {
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, newFakeSessionRepo())
	session := startTestSession(t, u)

	_, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{Text: "quiero un turno"})
	require.NoError(t, err)

	stored, err := u.GetSession(context.Background(), "clinica-del-sol", session.ID)
	require.NoError(t, err)
	assert.Equal(t, "booking_service", stored.CurrentIntent)
}

func TestChat_UnmatchedTextFallsBack(t *testing.T) {
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, newFakeSessionRepo())
	session := startTestSession(t, u)

	reply, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{Text: "zzz"})
	require.NoError(t, err)

	assert.Empty(t, reply.Intent)
	require.Len(t, reply.Messages, 2)
	assert.Equal(t, "Disculpa, no estoy seguro de entender. ¿Podrías reformular tu pregunta?", reply.Messages[1].Content)
}

func TestChat_QuickReplyHandsOffToWhatsApp(t *testing.T) {
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, newFakeSessionRepo())
	session := startTestSession(t, u)

	reply, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{QuickReply: service.IntentWhatsApp})
	require.NoError(t, err)

	assert.Equal(t, service.IntentWhatsApp, reply.Intent)
	assert.Equal(t, "📱 Contactar por WhatsApp", reply.Messages[0].Content)
	assert.Equal(t, string(entity.MessageHandoff), reply.Messages[1].Type)
	require.NotNil(t, reply.Handoff)
	assert.Equal(t, "https://wa.me/5491155550000?text=Hola", reply.Handoff.URL)
	assert.Equal(t, int64(1500), reply.Handoff.DelayMs)
}

func TestChat_HandoffWithoutWhatsAppConfigured(t *testing.T) {
	snapshot := practiceSnapshot()
	snapshot.Website.Widgets = nil
	u := newTestChat(&fakeSnapshots{snapshot: snapshot}, newFakeSessionRepo())
	session := startTestSession(t, u)

	reply, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{Text: "quiero hablar con alguien"})
	require.NoError(t, err)

	assert.Equal(t, service.IntentWhatsApp, reply.Intent)
	assert.Nil(t, reply.Handoff)
}

func TestChat_SessionBelongsToPractice(t *testing.T) {
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, newFakeSessionRepo())
	session := startTestSession(t, u)

	_, err := u.SendMessage(context.Background(), "otra-clinica", session.ID, &dto.ChatMessageRequest{Text: "hola"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = u.GetSession(context.Background(), "clinica-del-sol", "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestChat_ConcurrentTurnIsNotLost(t *testing.T) {
	sessions := newFakeSessionRepo()
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, sessions)
	session := startTestSession(t, u)

	// another tab's turn is stored after this request read the session
	sessions.beforeUpdate = func() {
		sessions.beforeUpdate = nil
		other, err := sessions.Find(context.Background(), session.ID)
		require.NoError(t, err)
		other.Messages = append(other.Messages, entity.ChatMessage{ID: "other", Sender: entity.SenderUser, Content: "otra pestaña"})
		require.NoError(t, sessions.Save(context.Background(), other))
	}

	_, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{Text: "gracias"})
	require.NoError(t, err)

	stored, err := u.GetSession(context.Background(), "clinica-del-sol", session.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 4)
	assert.Equal(t, "otra pestaña", stored.Messages[1].Content)
	assert.Equal(t, "gracias", stored.Messages[2].Content)
}

func TestChat_SessionExpiredMidTurn(t *testing.T) {
	sessions := newFakeSessionRepo()
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, sessions)
	session := startTestSession(t, u)
	sessions.beforeUpdate = func() { delete(sessions.sessions, session.ID) }

	_, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{Text: "hola"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestChat_HistoryIsCapped(t *testing.T) {
	sessions := newFakeSessionRepo()
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, sessions)

	seed := &entity.ChatSession{ID: "s-1", PracticeSlug: "clinica-del-sol"}
	for i := 0; i < maxSessionMessages; i++ {
		seed.Messages = append(seed.Messages, entity.ChatMessage{ID: fmt.Sprintf("m-%d", i), Sender: entity.SenderBot})
	}
	require.NoError(t, sessions.Save(context.Background(), seed))

	_, err := u.SendMessage(context.Background(), "clinica-del-sol", "s-1", &dto.ChatMessageRequest{Text: "gracias"})
	require.NoError(t, err)

	stored, err := u.GetSession(context.Background(), "clinica-del-sol", "s-1")
	require.NoError(t, err)
	require.Len(t, stored.Messages, maxSessionMessages)
	assert.Equal(t, "m-2", stored.Messages[0].ID)
}

func TestChat_ResetClearsHistoryAndContext(t *testing.T) {
	u := newTestChat(&fakeSnapshots{snapshot: practiceSnapshot()}, newFakeSessionRepo())
	session := startTestSession(t, u)
	_, err := u.SendMessage(context.Background(), "clinica-del-sol", session.ID, &dto.ChatMessageRequest{Text: "turno"})
	require.NoError(t, err)

	reset, err := u.ResetSession(context.Background(), "clinica-del-sol", session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, reset.ID)
	assert.Len(t, reset.Messages, 1)
	assert.Empty(t, reset.CurrentIntent)
}
