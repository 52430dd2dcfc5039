package implementation

import (
	"context"
	"errors"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/mapper"
	"civicvoice-be/internal/model"
	"civicvoice-be/internal/repository/contract"
	"civicvoice-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeedbackMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeedbackMapper(),
	}
}

func (r *FeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.Feedback) error {
	m := r.mapper.ToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) Update(ctx context.Context, feedback *entity.Feedback) error {
	m := r.mapper.ToModel(feedback)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Feedback{}).Error
}

func (r *FeedbackRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Feedback, error) {
	var m model.Feedback
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments").
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeedbackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feedback, error) {
	var m model.Feedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error) {
	var ms []*model.Feedback
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("User"), specs...)

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *FeedbackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Feedback{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FeedbackRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *FeedbackRepositoryImpl) IncrementUpvotes(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("id = ?", id).
		Update("upvotes", gorm.Expr("upvotes + 1")).Error
}

func (r *FeedbackRepositoryImpl) AddComment(ctx context.Context, comment *entity.FeedbackComment) error {
	m := r.mapper.CommentToModel(comment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*comment = *r.mapper.CommentToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("status = ?", status).
		Count(&count).Error
	return int(count), err
}

func (r *FeedbackRepositoryImpl) CountByCategory(ctx context.Context) (map[string]int, error) {
	return r.groupedCounts(ctx, "category")
}

func (r *FeedbackRepositoryImpl) CountByUrgency(ctx context.Context) (map[string]int, error) {
	return r.groupedCounts(ctx, "urgency")
}

func (r *FeedbackRepositoryImpl) groupedCounts(ctx context.Context, column string) (map[string]int, error) {
	type row struct {
		Key   string
		Count int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, rw := range rows {
		counts[rw.Key] = rw.Count
	}
	return counts, nil
}

func (r *FeedbackRepositoryImpl) MonthlyCounts(ctx context.Context, months int) ([]entity.MonthlyFeedbackCount, error) {
	type row struct {
		Month string
		Count int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Select("to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("created_at >= date_trunc('month', NOW()) - make_interval(months => ?)", months).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.MonthlyFeedbackCount, len(rows))
	for i, rw := range rows {
		out[i] = entity.MonthlyFeedbackCount{Month: rw.Month, Count: rw.Count}
	}
	return out, nil
}
