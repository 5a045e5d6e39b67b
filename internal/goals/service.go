package goals

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mfreed/larder/internal/domain"
)

// Service orchestrates nutrition-goal repository + store operations.
type Service struct {
	repo    domain.GoalsRepository
	store   domain.Store
	logger  *slog.Logger
	ownerID string
}

// NewService creates a goals service for one owner.
func NewService(repo domain.GoalsRepository, store domain.Store, ownerID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, store: store, logger: logger, ownerID: ownerID}
}

// Cached returns the locally stored goals, if any.
func (s *Service) Cached() (*domain.NutritionGoals, bool) {
	return s.store.GetGoals(s.ownerID)
}

// Fetch loads goals from the server and caches them.
func (s *Service) Fetch(ctx context.Context) (*domain.NutritionGoals, error) {
	goals, err := s.repo.FetchGoals(ctx, s.ownerID)
	if err != nil {
		s.logger.Error("failed to fetch goals", "error", err, "owner", s.ownerID)
		return nil, fmt.Errorf("fetch goals: %w", err)
	}
	if err := s.store.SaveGoals(s.ownerID, goals); err != nil {
		s.logger.Error("failed to cache goals", "error", err, "owner", s.ownerID)
	}
	s.logger.Debug("fetched goals", "owner", s.ownerID)
	return goals, nil
}

// Update pushes new goals to the server. The cache is only updated
// after the server accepts, so a failed save leaves the previous
// targets in place for the UI to fall back to.
func (s *Service) Update(ctx context.Context, goals domain.NutritionGoals) error {
	if err := s.repo.UpdateGoals(ctx, s.ownerID, goals); err != nil {
		s.logger.Error("failed to update goals", "error", err, "owner", s.ownerID)
		return fmt.Errorf("update goals: %w", err)
	}
	if err := s.store.SaveGoals(s.ownerID, &goals); err != nil {
		s.logger.Error("failed to cache goals", "error", err, "owner", s.ownerID)
	}
	s.logger.Info("updated goals", "owner", s.ownerID, "calories", goals.DailyCalories)
	return nil
}
