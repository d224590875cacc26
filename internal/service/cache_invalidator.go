package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/persistence"
)

// RegisterCacheInvalidation drops cached user entries whenever an update or
// delete event fires, keeping cache-aside reads coherent.
func RegisterCacheInvalidation(dispatcher events.Dispatcher, cache persistence.UserCache, logger *zap.Logger) {
	invalidate := func(ctx context.Context, event events.Event) error {
		if err := cache.Invalidate(ctx, event.UserID); err != nil {
			logger.Warn("cache invalidation failed",
				zap.String("user_id", event.UserID),
				zap.String("event", string(event.Type)),
				zap.Error(err))
			return err
		}
		return nil
	}

	dispatcher.Subscribe(events.EventUserUpdated, invalidate)
	dispatcher.Subscribe(events.EventUserDeleted, invalidate)
}
