package unitofwork

import (
	"context"

	"civicvoice-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FeedbackRepository() contract.FeedbackRepository
	NotificationRepository() contract.NotificationRepository
}
