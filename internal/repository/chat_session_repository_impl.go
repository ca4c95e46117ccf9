package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-site-api/internal/domain/entity"
	domainRepo "clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/infrastructure/cache"

	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds the optimistic retries of Update.
const maxUpdateAttempts = 10

type chatSessionRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewChatSessionRepository stores sessions as JSON; every Save renews the TTL.
func NewChatSessionRepository(redisClient *redis.Client, ttl time.Duration) domainRepo.ChatSessionRepository {
	return &chatSessionRepository{redisClient: redisClient, ttl: ttl}
}

func (r *chatSessionRepository) Save(ctx context.Context, session *entity.ChatSession) error {
	data, err := entity.SerializeSession(session)
	if err != nil {
		return err
	}
	if err := r.redisClient.Set(ctx, cache.ChatSessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save chat session %s: %w", session.ID, err)
	}
	return nil
}

func (r *chatSessionRepository) Find(ctx context.Context, id string) (*entity.ChatSession, error) {
	data, err := r.redisClient.Get(ctx, cache.ChatSessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load chat session %s: %w", id, err)
	}
	return entity.DeserializeSession(data)
}

// Update runs mutate inside WATCH/MULTI on the session key and retries when a
// concurrent writer changed the key before EXEC.
func (r *chatSessionRepository) Update(ctx context.Context, id string, mutate func(session *entity.ChatSession) error) (*entity.ChatSession, error) {
	key := cache.ChatSessionKeyPrefix + id

	var updated *entity.ChatSession
	txf := func(tx *redis.Tx) error {
		updated = nil
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		session, err := entity.DeserializeSession(data)
		if err != nil {
			return err
		}
		if err := mutate(session); err != nil {
			return err
		}
		out, err := entity.SerializeSession(session)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		if err == nil {
			updated = session
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.redisClient.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("update chat session %s: %w", id, err)
		}
		return updated, nil
	}
	return nil, fmt.Errorf("update chat session %s: %w", id, domainRepo.ErrConflict)
}
