package service

import (
	"context"
	"fmt"
	"time"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/pkg/logger"
	"civicvoice-be/internal/repository/specification"
	"civicvoice-be/internal/repository/unitofwork"
	"civicvoice-be/pkg/events"
	pktNats "civicvoice-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time updates, implemented by the
// websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
	Broadcast(notification entity.Notification)
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the audit bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("civic.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to civic.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	switch event.EventType() {
	case events.TypeFeedbackSubmitted:
		return s.notifyAdmins(ctx, event)
	case events.TypeFeedbackStatusChanged:
		return s.notifySubmitter(ctx, event)
	default:
		// Audit-only events (logins, logouts) produce no inbox entries.
		return nil
	}
}

// notifyAdmins fans a new-submission notice out to every admin account.
func (s *NotificationService) notifyAdmins(ctx context.Context, event events.Event) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admins, err := uow.UserRepository().FindAll(ctx, specification.ByRole{Role: string(entity.UserRoleAdmin)})
	if err != nil {
		return err
	}

	title, _ := event.Payload()["title"].(string)
	for _, admin := range admins {
		notif := entity.Notification{
			Id:        uuid.New(),
			UserId:    admin.Id,
			Title:     "New feedback submitted",
			Body:      fmt.Sprintf("A civilian submitted %q for review.", title),
			CreatedAt: time.Now(),
		}
		if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", "Error saving notification", map[string]interface{}{"error": err, "user_id": admin.Id})
			continue
		}
		if s.delivery != nil {
			s.delivery.Send(admin.Id, notif)
		}
	}
	return nil
}

func (s *NotificationService) notifySubmitter(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	uidStr, ok := payload["user_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", "Status change event without user_id", nil)
		return nil
	}
	userID, err := uuid.Parse(uidStr)
	if err != nil {
		return nil
	}

	title, _ := payload["title"].(string)
	status, _ := payload["status"].(string)

	notif := entity.Notification{
		Id:        uuid.New(),
		UserId:    userID,
		Title:     "Feedback status updated",
		Body:      fmt.Sprintf("%q is now %s.", title, status),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}
	return nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().FindByUser(ctx, userID, limit, offset)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id)
}
