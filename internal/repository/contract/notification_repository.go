package contract

import (
	"context"

	"civicvoice-be/internal/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
