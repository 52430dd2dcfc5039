package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"civicvoice-be/internal/dto"
	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/repository/specification"
	"civicvoice-be/internal/repository/unitofwork"

	"civicvoice-be/pkg/events"
	pktNats "civicvoice-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrFeedbackNotFound = errors.New("feedback not found")
var ErrNotOwner = errors.New("feedback does not belong to this user")

type IFeedbackService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.FeedbackResponse, error)
	ListOwn(ctx context.Context, userId uuid.UUID) ([]*dto.FeedbackResponse, error)
	ListAll(ctx context.Context, query *dto.AdminFeedbackQuery) ([]*dto.FeedbackResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Upvote(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateFeedbackStatusRequest) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewFeedbackService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IFeedbackService {
	return &feedbackService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func toFeedbackResponse(fb *entity.Feedback) *dto.FeedbackResponse {
	comments := make([]dto.FeedbackCommentResponse, 0, len(fb.Comments))
	for _, c := range fb.Comments {
		comments = append(comments, dto.FeedbackCommentResponse{
			Id:        c.Id,
			UserId:    c.UserId,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}
	return &dto.FeedbackResponse{
		Id:          fb.Id,
		Title:       fb.Title,
		Description: fb.Description,
		Category:    fb.Category,
		Status:      string(fb.Status),
		Urgency:     string(fb.Urgency),
		Location:    fb.Location,
		Upvotes:     fb.Upvotes,
		Attachments: fb.Attachments,
		Comments:    comments,
		UserEmail:   fb.UserEmail,
		UserName:    fb.UserName,
		CreatedAt:   fb.CreatedAt,
	}
}

func (s *feedbackService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedback := &entity.Feedback{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      entity.FeedbackStatusPending,
		Urgency:     entity.FeedbackUrgency(req.Urgency),
		Location:    req.Location,
		Attachments: req.Attachments,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.FeedbackRepository().Create(ctx, feedback); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeFeedbackSubmitted,
			Data: map[string]interface{}{
				"feedback_id": feedback.Id,
				"title":       feedback.Title,
				"user_id":     userId,
			},
			OccurredAt: time.Now(),
		}
		// Notification delivery is auxiliary, never fail the request.
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish FEEDBACK_SUBMITTED event: %v\n", err)
		}
	}

	return toFeedbackResponse(feedback), nil
}

func (s *feedbackService) Show(ctx context.Context, id uuid.UUID) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedback, err := uow.FeedbackRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	return toFeedbackResponse(feedback), nil
}

func (s *feedbackService) ListOwn(ctx context.Context, userId uuid.UUID) ([]*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedbacks, err := uow.FeedbackRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.FeedbackResponse, 0, len(feedbacks))
	for _, fb := range feedbacks {
		responses = append(responses, toFeedbackResponse(fb))
	}
	return responses, nil
}

func (s *feedbackService) ListAll(ctx context.Context, query *dto.AdminFeedbackQuery) ([]*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if query.Status != "" {
		specs = append(specs, specification.ByStatus{Status: query.Status})
	}
	if query.Category != "" {
		specs = append(specs, specification.ByCategory{Category: query.Category})
	}

	switch query.Sort {
	case "popular":
		specs = append(specs, specification.MostUpvoted{})
	case "priority":
		specs = append(specs, specification.PendingFirst{})
	default:
		specs = append(specs, specification.NewestFirst{})
	}

	specs = append(specs, specification.Paginate{Limit: query.Limit, Offset: query.Offset})

	feedbacks, err := uow.FeedbackRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.FeedbackResponse, 0, len(feedbacks))
	for _, fb := range feedbacks {
		responses = append(responses, toFeedbackResponse(fb))
	}
	return responses, nil
}

func (s *feedbackService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedback, err := uow.FeedbackRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	if feedback.UserId != userId {
		return nil, ErrNotOwner
	}

	if req.Title != "" {
		feedback.Title = req.Title
	}
	if req.Description != "" {
		feedback.Description = req.Description
	}
	if req.Category != "" {
		feedback.Category = req.Category
	}
	if req.Urgency != "" {
		feedback.Urgency = entity.FeedbackUrgency(req.Urgency)
	}
	if req.Location != "" {
		feedback.Location = req.Location
	}
	if req.Attachments != nil {
		feedback.Attachments = req.Attachments
	}
	feedback.UpdatedAt = time.Now()

	if err := uow.FeedbackRepository().Update(ctx, feedback); err != nil {
		return nil, err
	}
	return toFeedbackResponse(feedback), nil
}

func (s *feedbackService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedback, err := uow.FeedbackRepository().FindById(ctx, id)
	if err != nil {
		return err
	}
	if feedback == nil {
		return ErrFeedbackNotFound
	}
	if feedback.UserId != userId {
		return ErrNotOwner
	}

	return uow.FeedbackRepository().Delete(ctx, id)
}

func (s *feedbackService) Upvote(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FeedbackRepository().IncrementUpvotes(ctx, id)
}

// UpdateStatus moves a feedback through the triage pipeline and queues the
// submitter email. Invalid statuses are rejected before touching the row.
func (s *feedbackService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateFeedbackStatusRequest) (*dto.FeedbackResponse, error) {
	if !entity.ValidFeedbackStatus(req.Status) {
		return nil, fmt.Errorf("unknown feedback status %q", req.Status)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	feedback, err := uow.FeedbackRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}

	if string(feedback.Status) == req.Status {
		return toFeedbackResponse(feedback), nil
	}

	if err := uow.FeedbackRepository().UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	feedback.Status = entity.FeedbackStatus(req.Status)
	feedback.UpdatedAt = time.Now()

	msgJson, err := json.Marshal(dto.StatusChangedMessage{
		FeedbackId: feedback.Id,
		NewStatus:  req.Status,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeFeedbackStatusChanged,
			Data: map[string]interface{}{
				"feedback_id": feedback.Id,
				"title":       feedback.Title,
				"status":      req.Status,
				"user_id":     feedback.UserId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish FEEDBACK_STATUS_CHANGED event: %v\n", err)
		}
	}

	return toFeedbackResponse(feedback), nil
}
