package event

import (
	"context"
	"log/slog"

	"github.com/tuanvumaihuynh/product-admin/internal/model"
)

const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
)

// Topics lists every topic a product action is journaled to.
var Topics = []string{
	TopicProductCreated,
	TopicProductUpdated,
	TopicProductDeleted,
}

// TopicForAction returns the topic a product action is published on.
func TopicForAction(action model.ProductAction) string {
	switch action {
	case model.ProductActionDelete:
		return TopicProductDeleted
	case model.ProductActionUpdate:
		return TopicProductUpdated
	default:
		return TopicProductCreated
	}
}

func (s *Service) handleProductActionEvent(ctx context.Context, topic string, ev model.ProductActionEvent) error {
	s.logger.InfoContext(ctx, "handling product action event",
		slog.String("topic", topic),
		slog.String("action", string(ev.Action)),
		slog.String("product_id", ev.ProductID),
		slog.String("shop", ev.Shop),
		slog.Time("occurred_at", ev.OccurredAt),
	)
	return nil
}
