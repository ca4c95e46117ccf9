package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-site-api/config"
	"clinic-site-api/internal/converter"
	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/infrastructure/metrics"
	"clinic-site-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxSessionMessages caps the stored history; older messages are dropped first.
const maxSessionMessages = 200

type ChatUsecase interface {
	StartSession(ctx context.Context, slug string) (*dto.ChatSessionResponse, error)
	SendMessage(ctx context.Context, slug, sessionID string, req *dto.ChatMessageRequest) (*dto.ChatReplyResponse, error)
	GetSession(ctx context.Context, slug, sessionID string) (*dto.ChatSessionResponse, error)
	ResetSession(ctx context.Context, slug, sessionID string) (*dto.ChatSessionResponse, error)
}

type chatUsecase struct {
	log         *logrus.Logger
	content     SnapshotSource
	sessionRepo repository.ChatSessionRepository
	matcher     *service.IntentMatcher
	composer    *service.ResponseComposer
	metrics     *metrics.SiteMetrics
	cfg         config.ChatConfig
	now         func() time.Time
}

func NewChatUsecase(
	log *logrus.Logger,
	content SnapshotSource,
	sessionRepo repository.ChatSessionRepository,
	matcher *service.IntentMatcher,
	composer *service.ResponseComposer,
	m *metrics.SiteMetrics,
	cfg config.ChatConfig,
) ChatUsecase {
	return &chatUsecase{
		log:         log,
		content:     content,
		sessionRepo: sessionRepo,
		matcher:     matcher,
		composer:    composer,
		metrics:     m,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (u *chatUsecase) StartSession(ctx context.Context, slug string) (*dto.ChatSessionResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrMissingSlug
	}

	snapshot, err := u.welcomeSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := u.now()
	session := &entity.ChatSession{
		ID:           uuid.NewString(),
		PracticeSlug: slug,
		Messages:     []entity.ChatMessage{u.composer.Welcome(snapshot)},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save chat session: %+v", err)
		return nil, err
	}

	u.log.Debugf("Chat session started: id=%s, slug=%s", session.ID, slug)
	return converter.SessionToResponse(session), nil
}

// SendMessage appends the visitor message and the bot replies.
//
// Flow:
// 1. Load the session (must belong to slug)
// 2. Resolve the intent: quick-reply value first, free text otherwise
// 3. Compose replies from the intent and the practice content
// 4. Persist and report a WhatsApp hand-off when one was produced
func (u *chatUsecase) SendMessage(ctx context.Context, slug, sessionID string, req *dto.ChatMessageRequest) (*dto.ChatReplyResponse, error) {
	session, err := u.loadSession(ctx, slug, sessionID)
	if err != nil {
		return nil, err
	}

	// Step 2: intent
	var (
		intent  *entity.ChatIntent
		matched bool
		shown   string
	)
	if value := strings.TrimSpace(req.QuickReply); value != "" {
		intent, matched = u.matcher.Lookup(value)
		shown = service.QuickReplyLabel(value)
		if !matched {
			intent, matched = u.matcher.Match(value)
		}
	} else {
		shown = strings.TrimSpace(req.Text)
		intent, matched = u.matcher.Match(shown)
	}

	// Step 3: replies
	chatCtx := session.Context
	userMsg := u.composer.UserMessage(shown)
	replies := u.composer.Compose(ctx, intent, &chatCtx, u.content.ForSlug(session.PracticeSlug))

	// Step 4: persist on top of whatever other turns landed meanwhile
	saved, err := u.sessionRepo.Update(ctx, session.ID, func(s *entity.ChatSession) error {
		if s.PracticeSlug != session.PracticeSlug {
			return ErrSessionNotFound
		}
		s.Messages = append(s.Messages, userMsg)
		s.Messages = append(s.Messages, replies...)
		if overflow := len(s.Messages) - maxSessionMessages; overflow > 0 {
			s.Messages = s.Messages[overflow:]
		}
		s.Context = chatCtx
		s.UpdatedAt = u.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		u.log.Warnf("Failed to save chat session %s: %+v", session.ID, err)
		return nil, err
	}
	if saved == nil {
		return nil, ErrSessionNotFound
	}

	intentKey := "fallback"
	if matched {
		intentKey = intent.Key
	}
	u.metrics.ObserveChatIntent(intentKey)

	resp := &dto.ChatReplyResponse{
		SessionID: saved.ID,
		Messages:  converter.MessagesToResponses(append([]entity.ChatMessage{userMsg}, replies...)),
	}
	if matched {
		resp.Intent = intent.Key
	}
	for i := range replies {
		if replies[i].IsHandoff() {
			resp.Handoff = u.handoff(ctx, session.PracticeSlug)
			break
		}
	}

	return resp, nil
}

func (u *chatUsecase) GetSession(ctx context.Context, slug, sessionID string) (*dto.ChatSessionResponse, error) {
	session, err := u.loadSession(ctx, slug, sessionID)
	if err != nil {
		return nil, err
	}
	return converter.SessionToResponse(session), nil
}

// ResetSession clears history and context, keeping the session id.
func (u *chatUsecase) ResetSession(ctx context.Context, slug, sessionID string) (*dto.ChatSessionResponse, error) {
	session, err := u.loadSession(ctx, slug, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot, err := u.welcomeSnapshot(ctx, session.PracticeSlug)
	if err != nil {
		return nil, err
	}

	session.Messages = []entity.ChatMessage{u.composer.Welcome(snapshot)}
	session.Context = entity.ChatContext{}
	session.UpdatedAt = u.now()

	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to save chat session %s: %+v", session.ID, err)
		return nil, err
	}
	return converter.SessionToResponse(session), nil
}

func (u *chatUsecase) loadSession(ctx context.Context, slug, sessionID string) (*entity.ChatSession, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrMissingSlug
	}
	session, err := u.sessionRepo.Find(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		u.log.Warnf("Failed to load chat session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil || session.PracticeSlug != slug {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// welcomeSnapshot fails only for an unknown practice; other content errors
// fall back to the default greeting.
func (u *chatUsecase) welcomeSnapshot(ctx context.Context, slug string) (*entity.ContentSnapshot, error) {
	snapshot, err := u.content.Get(ctx, slug)
	if err == nil {
		return snapshot, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPracticeNotFound
	}
	u.log.Warnf("Failed to load content for chat welcome %s: %+v", slug, err)
	return nil, nil
}

func (u *chatUsecase) handoff(ctx context.Context, slug string) *dto.HandoffResponse {
	snapshot, err := u.content.Get(ctx, slug)
	if err != nil {
		u.log.Warnf("Failed to load WhatsApp settings for %s: %+v", slug, err)
		return nil
	}
	wa := converter.WhatsAppToResponse(snapshot.Website.Widgets, u.cfg.HandoffFallback)
	if wa == nil {
		u.log.Warnf("WhatsApp hand-off requested but not configured for %s", slug)
		return nil
	}
	return &dto.HandoffResponse{
		URL:     wa.URL,
		DelayMs: u.cfg.HandoffDelay.Milliseconds(),
	}
}
