package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

type MessageSender string

const (
	SenderBot  MessageSender = "bot"
	SenderUser MessageSender = "user"
)

type MessageType string

const (
	MessageText         MessageType = "text"
	MessageQuickReplies MessageType = "quick_replies"
	MessageTyping       MessageType = "typing"
	MessageHandoff      MessageType = "handoff"
)

type QuickReply struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ChatIntent is a static, process-wide intent definition.
type ChatIntent struct {
	Key               string       `json:"key"`
	Patterns          []string     `json:"patterns"`
	ResponseTemplates []string     `json:"responses"`
	QuickReplies      []QuickReply `json:"quick_replies,omitempty"`
	NextIntent        string       `json:"next_intent,omitempty"`
}

type ChatMessage struct {
	ID           string        `json:"id"`
	Sender       MessageSender `json:"sender"`
	Content      string        `json:"content"`
	Timestamp    time.Time     `json:"timestamp"`
	Type         MessageType   `json:"type"`
	QuickReplies []QuickReply  `json:"quick_replies,omitempty"`
}

// IsHandoff reports whether the caller must redirect to the human channel.
func (m *ChatMessage) IsHandoff() bool {
	return m.Type == MessageHandoff
}

type ChatUserInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type ChatAppointmentInfo struct {
	DoctorID  string `json:"doctor_id,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

type ChatContext struct {
	CurrentIntent   string               `json:"current_intent,omitempty"`
	UserInfo        *ChatUserInfo        `json:"user_info,omitempty"`
	AppointmentInfo *ChatAppointmentInfo `json:"appointment_info,omitempty"`
}

// ChatSession is the persisted conversation state of one visitor.
type ChatSession struct {
	ID           string        `json:"id"`
	PracticeSlug string        `json:"slug"`
	Messages     []ChatMessage `json:"messages"`
	Context      ChatContext   `json:"context"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// SerializeSession encodes a session for client-side or cache storage.
func SerializeSession(session *ChatSession) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("serialize chat session: nil session")
	}
	return json.Marshal(session)
}

// DeserializeSession is the inverse of SerializeSession.
func DeserializeSession(data []byte) (*ChatSession, error) {
	var session ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("deserialize chat session: %w", err)
	}
	if session.Messages == nil {
		session.Messages = []ChatMessage{}
	}
	return &session, nil
}
