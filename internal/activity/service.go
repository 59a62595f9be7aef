// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/pkg/uuid"
)

// Service records and lists activity.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Record stores an activity entry. When item.UserID is empty the
authenticated user of the context is used.

Failures are logged at warn level and never returned.
*/
func (service *Service) Record(context context.Context, item Activity) {
	if item.UserID == "" {
		item.UserID = ctxutil.UserID(context)
	}
	item.ID = uuid.New()

	if err := service.repository.Insert(context, &item); err != nil {
		service.logger.Warn("activity_record_failed",
			slog.String("action", string(item.Action)),
			slog.String("entity_type", item.EntityType),
			slog.String("entity_id", item.EntityID),
			slog.Any("error", err),
		)
	}
}

// List returns the newest activity first. The limit is clamped to [1, MaxLimit].
func (service *Service) List(context context.Context, filter Filter) ([]*Activity, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultLimit
	case filter.Limit > MaxLimit:
		filter.Limit = MaxLimit
	}
	return service.repository.List(context, filter)
}
