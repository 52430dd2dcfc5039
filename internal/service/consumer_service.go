package service

import (
	"context"
	"encoding/json"
	"log"

	"civicvoice-be/internal/dto"
	"civicvoice-be/internal/pkg/mailer"
	"civicvoice-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the status-change work queue and emails the
// affected submitters.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.StatusChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	feedback, err := uow.FeedbackRepository().FindById(ctx, payload.FeedbackId)
	if err != nil {
		log.Printf("[ERROR] Failed to get feedback %s: %v", payload.FeedbackId, err)
		msg.Nack()
		return
	}
	if feedback == nil {
		// Deleted before the worker got to it.
		msg.Ack()
		return
	}

	if feedback.UserEmail == "" {
		log.Printf("[WARN] Feedback %s has no submitter email, skipping", payload.FeedbackId)
		msg.Ack()
		return
	}

	if err := cs.emailService.SendStatusUpdate(feedback.UserEmail, feedback.Title, payload.NewStatus); err != nil {
		log.Printf("[ERROR] Failed to send status email for feedback %s: %v", payload.FeedbackId, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Status email sent for feedback %s (%s)", payload.FeedbackId, payload.NewStatus)
	msg.Ack()
}
