package dto

import "time"

// Request DTOs

// ChatMessageRequest carries either free text or a quick-reply value.
type ChatMessageRequest struct {
	Text       string `json:"text" validate:"required_without=QuickReply,max=500"`
	QuickReply string `json:"quick_reply" validate:"omitempty,max=50"`
}

// Response DTOs

type QuickReplyResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ChatMessageResponse struct {
	ID           string               `json:"id"`
	Sender       string               `json:"sender"`
	Content      string               `json:"content"`
	Type         string               `json:"type"`
	Timestamp    time.Time            `json:"timestamp"`
	QuickReplies []QuickReplyResponse `json:"quick_replies,omitempty"`
}

type HandoffResponse struct {
	URL     string `json:"url,omitempty"`
	DelayMs int64  `json:"delay_ms"`
}

type ChatSessionResponse struct {
	ID            string                `json:"id"`
	Slug          string                `json:"slug"`
	CurrentIntent string                `json:"current_intent,omitempty"`
	Messages      []ChatMessageResponse `json:"messages"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type ChatReplyResponse struct {
	SessionID string                `json:"session_id"`
	Intent    string                `json:"intent,omitempty"`
	Messages  []ChatMessageResponse `json:"messages"`
	Handoff   *HandoffResponse      `json:"handoff,omitempty"`
}
