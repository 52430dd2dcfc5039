package service

import (
	"context"
	"errors"

	"civicvoice-be/internal/dto"
	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/repository/unitofwork"
	"civicvoice-be/pkg/admin/dashboard"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetInsights(ctx context.Context) (*dto.InsightsResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserDTO, error)
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status string) error
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, aggregator *dashboard.Aggregator) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow)
}

func (s *adminService) GetInsights(ctx context.Context) (*dto.InsightsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetInsights(ctx, uow)
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, dto.UserDTO{
			Id:        user.Id,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			UserType:  string(user.Role),
		})
	}
	return dtos, nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != string(entity.UserStatusActive) && status != string(entity.UserStatusBlocked) {
		return errors.New("unknown user status")
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().UpdateStatus(ctx, id, status)
}
