package users

import (
	"context"
	"fmt"
	"strings"

	"street-eats/internal/models"
)

// AddressLister is the slice of the addresses module the profile needs.
type AddressLister interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Address, error)
}

// ServiceInterface exposes profile aggregation and bot registration.
type ServiceInterface interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	RegisterFromBot(ctx context.Context, req models.BotRegisterRequest) (*models.User, error)
}

// Service aggregates the user row with their saved addresses. The mini-app
// re-fetches this after every address mutation, so it is always assembled
// fresh and never cached.
type Service struct {
	repo      RepositoryInterface
	addresses AddressLister
}

func NewService(repo RepositoryInterface, addresses AddressLister) ServiceInterface {
	return &Service{repo: repo, addresses: addresses}
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.GetProfile: %w", err)
	}
	if list == nil {
		list = []models.Address{}
	}
	return &models.Profile{User: user, Addresses: list}, nil
}

// RegisterFromBot upserts a customer from the companion bot's onboarding
// flow. The bot sends a display name when it has no structured first name,
// so "name" is accepted as a fallback. Coordinates always overwrite the
// stored ones: the customer just pinned them.
func (s *Service) RegisterFromBot(ctx context.Context, req models.BotRegisterRequest) (*models.User, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		firstName = strings.TrimSpace(req.Name)
	}
	input := models.UpsertTelegramUserInput{
		TelegramID: req.TelegramID,
		FirstName:  firstName,
		LastName:   strings.TrimSpace(req.LastName),
		Phone:      strings.TrimSpace(req.Phone),
	}
	if req.Location != nil {
		lat, lon := req.Location.Latitude, req.Location.Longitude
		input.Latitude = &lat
		input.Longitude = &lon
	}
	user, err := s.repo.UpsertTelegramUser(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("service.RegisterFromBot: %w", err)
	}
	return user, nil
}
