package implementation

import (
	"context"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/model"
	"civicvoice-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *entity.Notification) error {
	m := &model.Notification{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	n.Id = m.Id
	n.CreatedAt = m.CreatedAt
	return nil
}

func (r *NotificationRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var ms []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Notification, len(ms))
	for i, m := range ms {
		out[i] = &entity.Notification{
			Id:        m.Id,
			UserId:    m.UserId,
			Title:     m.Title,
			Body:      m.Body,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}
