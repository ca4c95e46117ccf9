package repository

import (
	"context"

	"clinic-site-api/internal/domain/entity"
)

type ContentRepository interface {
	FetchWebsite(ctx context.Context, slug string) (*entity.ContentSnapshot, error)
}
