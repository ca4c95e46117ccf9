package converter

import (
	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/domain/entity"
)

// MessagesToResponses converts ChatMessage entities to ChatMessageResponse DTOs
func MessagesToResponses(messages []entity.ChatMessage) []dto.ChatMessageResponse {
	responses := make([]dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = dto.ChatMessageResponse{
			ID:        m.ID,
			Sender:    string(m.Sender),
			Content:   m.Content,
			Type:      string(m.Type),
			Timestamp: m.Timestamp,
		}
		for _, r := range m.QuickReplies {
			responses[i].QuickReplies = append(responses[i].QuickReplies, dto.QuickReplyResponse{Label: r.Label, Value: r.Value})
		}
	}
	return responses
}

// SessionToResponse converts a ChatSession entity to ChatSessionResponse DTO
func SessionToResponse(s *entity.ChatSession) *dto.ChatSessionResponse {
	if s == nil {
		return nil
	}
	return &dto.ChatSessionResponse{
		ID:            s.ID,
		Slug:          s.PracticeSlug,
		CurrentIntent: s.Context.CurrentIntent,
		Messages:      MessagesToResponses(s.Messages),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
