package repository

import (
	"context"

	"clinic-site-api/internal/domain/entity"
)

// ChatSessionRepository returns (nil, nil) from Find and Update when the session does not exist.
type ChatSessionRepository interface {
	Save(ctx context.Context, session *entity.ChatSession) error
	Find(ctx context.Context, id string) (*entity.ChatSession, error)
	// Update applies mutate to the stored session and writes it back only if no
	// other writer touched it in between. mutate may run more than once.
	Update(ctx context.Context, id string, mutate func(session *entity.ChatSession) error) (*entity.ChatSession, error)
}
