package handler

import (
	"context"
	"net/http"
	"time"

	"clinic-site-api/pkg/response"

	"github.com/redis/go-redis/v9"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	redisClient *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		redisClient: redisClient,
	}
}

// Check reports 503 when Redis, which holds the chat sessions, is unreachable.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	if h.redisClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			response.Failure(w, http.StatusServiceUnavailable, "Redis unavailable", status, response.NextActionRetryLater)
			return
		}
		status["redis"] = "ok"
	}

	response.Success(w, http.StatusOK, "Service healthy", status)
}
