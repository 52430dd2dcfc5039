package dashboard

import (
	"context"
	"sort"

	"civicvoice-be/internal/dto"
	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/pkg/logger"
	"civicvoice-be/internal/repository/specification"
	"civicvoice-be/internal/repository/unitofwork"
)

// Aggregator assembles the admin dashboard and insight figures.
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats collects the headline dashboard counters plus the five newest
// submissions.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DashboardStatsResponse, error) {
	totalFeedback, err := uow.FeedbackRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := uow.FeedbackRepository().CountByStatus(ctx, string(entity.FeedbackStatusPending))
	if err != nil {
		return nil, err
	}
	inProgress, err := uow.FeedbackRepository().CountByStatus(ctx, string(entity.FeedbackStatusInProgress))
	if err != nil {
		return nil, err
	}
	resolved, err := uow.FeedbackRepository().CountByStatus(ctx, string(entity.FeedbackStatusResolved))
	if err != nil {
		return nil, err
	}

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := uow.FeedbackRepository().FindAll(ctx,
		specification.NewestFirst{},
		specification.Paginate{Limit: 5},
	)
	var recentDtos []dto.FeedbackResponse
	if err == nil {
		for _, fb := range recent {
			recentDtos = append(recentDtos, dto.FeedbackResponse{
				Id:        fb.Id,
				Title:     fb.Title,
				Category:  fb.Category,
				Status:    string(fb.Status),
				Urgency:   string(fb.Urgency),
				Location:  fb.Location,
				Upvotes:   fb.Upvotes,
				UserEmail: fb.UserEmail,
				UserName:  fb.UserName,
				CreatedAt: fb.CreatedAt,
			})
		}
	}

	return &dto.DashboardStatsResponse{
		TotalFeedback:   int(totalFeedback),
		PendingCount:    pending,
		InProgressCount: inProgress,
		ResolvedCount:   resolved,
		TotalUsers:      int(totalUsers),
		RecentFeedback:  recentDtos,
	}, nil
}

// GetInsights builds the AI-insights panel: category and urgency
// distributions, the monthly submission trend and the most upvoted items.
func (a *Aggregator) GetInsights(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.InsightsResponse, error) {
	byCategory, err := uow.FeedbackRepository().CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byUrgency, err := uow.FeedbackRepository().CountByUrgency(ctx)
	if err != nil {
		return nil, err
	}
	trend, err := uow.FeedbackRepository().MonthlyCounts(ctx, 6)
	if err != nil {
		return nil, err
	}

	topUpvoted, err := uow.FeedbackRepository().FindAll(ctx,
		specification.MostUpvoted{},
		specification.Paginate{Limit: 5},
	)
	if err != nil {
		return nil, err
	}

	categories := make([]dto.CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		categories = append(categories, dto.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Count > categories[j].Count })

	urgencies := make([]dto.UrgencyCount, 0, len(byUrgency))
	for urgency, count := range byUrgency {
		urgencies = append(urgencies, dto.UrgencyCount{Urgency: urgency, Count: count})
	}
	sort.Slice(urgencies, func(i, j int) bool { return urgencies[i].Count > urgencies[j].Count })

	monthly := make([]dto.MonthlyCount, 0, len(trend))
	for _, point := range trend {
		monthly = append(monthly, dto.MonthlyCount{Month: point.Month, Count: point.Count})
	}

	var top []dto.FeedbackResponse
	for _, fb := range topUpvoted {
		top = append(top, dto.FeedbackResponse{
			Id:        fb.Id,
			Title:     fb.Title,
			Category:  fb.Category,
			Status:    string(fb.Status),
			Urgency:   string(fb.Urgency),
			Upvotes:   fb.Upvotes,
			CreatedAt: fb.CreatedAt,
		})
	}

	return &dto.InsightsResponse{
		Categories: categories,
		Urgencies:  urgencies,
		Trend:      monthly,
		TopUpvoted: top,
	}, nil
}
