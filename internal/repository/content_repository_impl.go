package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"clinic-site-api/internal/domain/entity"
	domainRepo "clinic-site-api/internal/domain/repository"
)

type contentRepository struct {
	client *GemaClient
}

func NewContentRepository(client *GemaClient) domainRepo.ContentRepository {
	return &contentRepository{client: client}
}

func (r *contentRepository) FetchWebsite(ctx context.Context, slug string) (*entity.ContentSnapshot, error) {
	query := url.Values{"slug": {slug}}.Encode()
	body, err := r.client.doJSON(ctx, http.MethodGet, endpointWebsite, query, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch website %s: %w", slug, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch website %s: %w", slug, errEmptyResponse)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode website %s: %w", slug, err)
	}
	if msg := env.errorMessage(); msg != "" {
		return nil, rejection(endpointWebsite, msg)
	}

	payload := body
	switch {
	case present(env.Data):
		payload = env.Data
	case present(env.Group) || present(env.Website):
	default:
		return nil, fmt.Errorf("fetch website %s: no data received", slug)
	}

	var snapshot entity.ContentSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode website %s: %w", slug, err)
	}
	snapshot.Normalize()

	r.client.log.Debugf("Fetched website for %s: %d doctors, %d schedules", slug, len(snapshot.Doctors), len(snapshot.Schedules))
	return &snapshot, nil
}
