package usecase

import (
	"context"
	"strings"

	"clinic-site-api/config"
	"clinic-site-api/internal/converter"
	"clinic-site-api/internal/delivery/dto"

	"github.com/sirupsen/logrus"
)

type WebsiteUsecase interface {
	GetWebsite(ctx context.Context, slug, specialty string) (*dto.WebsiteResponse, error)
}

type websiteUsecase struct {
	log     *logrus.Logger
	content SnapshotSource
	chatCfg config.ChatConfig
}

func NewWebsiteUsecase(log *logrus.Logger, content SnapshotSource, chatCfg config.ChatConfig) WebsiteUsecase {
	return &websiteUsecase{
		log:     log,
		content: content,
		chatCfg: chatCfg,
	}
}

// GetWebsite returns the page-load view of a practice, optionally narrowing
// the doctor list to one specialty.
func (u *websiteUsecase) GetWebsite(ctx context.Context, slug, specialty string) (*dto.WebsiteResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrMissingSlug
	}

	snapshot, err := u.content.Get(ctx, slug)
	if err != nil {
		u.log.Warnf("Failed to load website %s: %+v", slug, err)
		return nil, contentError(err)
	}

	return converter.WebsiteToResponse(snapshot, strings.TrimSpace(specialty), u.chatCfg.HandoffFallback), nil
}
