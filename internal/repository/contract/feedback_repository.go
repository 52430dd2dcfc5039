package contract

import (
	"context"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	Update(ctx context.Context, feedback *entity.Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Feedback, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feedback, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	IncrementUpvotes(ctx context.Context, id uuid.UUID) error
	AddComment(ctx context.Context, comment *entity.FeedbackComment) error

	// Aggregations for the admin dashboard and insights panel.
	CountByStatus(ctx context.Context, status string) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	CountByUrgency(ctx context.Context) (map[string]int, error)
	MonthlyCounts(ctx context.Context, months int) ([]entity.MonthlyFeedbackCount, error)
}
