package addresses

import (
	"context"

	"street-eats/internal/models"
)

// ServiceInterface exposes address CRUD scoped to the owning user.
type ServiceInterface interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Address, error)
	Create(ctx context.Context, userID int64, req models.AddressRequest) (*models.Address, error)
	Update(ctx context.Context, id, userID int64, req models.AddressRequest) (*models.Address, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID int64, req models.AddressRequest) (*models.Address, error) {
	return s.repo.Insert(ctx, userID, req)
}

func (s *Service) Update(ctx context.Context, id, userID int64, req models.AddressRequest) (*models.Address, error) {
	return s.repo.Update(ctx, id, userID, req)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}
