package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mfreed/larder/internal/domain"
)

const (
	defaultFetchLimit = 500
	cacheMaxAge       = 15 * time.Minute
)

// Service owns the library ViewState. It orchestrates repository and
// store operations and serializes whole-state replacement: every load
// or delete swaps in both source collections atomically under one
// mutex, so the last call to complete wins and no reader ever observes
// a half-applied mix of old and new collections.
type Service struct {
	repo    domain.LibraryRepository
	store   domain.Store
	logger  *slog.Logger
	ownerID string
	limit   int

	mu    sync.RWMutex
	state ViewState
}

// NewService creates a library service for one owner.
func NewService(repo domain.LibraryRepository, store domain.Store, ownerID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		store:   store,
		logger:  logger,
		ownerID: ownerID,
		limit:   defaultFetchLimit,
	}
}

// SetFetchLimit overrides the per-collection fetch cap. Values below 1
// keep the default.
func (s *Service) SetFetchLimit(limit int) {
	if limit > 0 {
		s.limit = limit
	}
}

// Snapshot returns a copy of the current view state. The slices inside
// are shared read-only projections; callers must not mutate them.
func (s *Service) Snapshot() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetQuery updates the search text; derived views pick it up on the
// next read.
func (s *Service) SetQuery(query string) {
	s.mu.Lock()
	s.state.Query = query
	s.mu.Unlock()
}

// SetSort updates the sort mode.
func (s *Service) SetSort(mode SortMode) {
	s.mu.Lock()
	s.state.Sort = mode
	s.mu.Unlock()
}

// SetCategory updates the optional category filter (empty clears it).
func (s *Service) SetCategory(category string) {
	s.mu.Lock()
	s.state.Category = category
	s.mu.Unlock()
}

// All returns the merged, filtered, sorted library.
func (s *Service) All() []domain.LibraryItem { return AllItems(s.Snapshot()) }

// Saved returns the saved-food subset.
func (s *Service) Saved() []domain.LibraryItem { return SavedOnly(s.Snapshot()) }

// Composed returns the recipe subset.
func (s *Service) Composed() []domain.LibraryItem { return ComposedOnly(s.Snapshot()) }

// LoadFromCache populates the state from the local store without
// touching the network. Returns false when nothing is cached.
func (s *Service) LoadFromCache() bool {
	foods, okFoods := s.store.GetSavedFoods(s.ownerID)
	recipes, okRecipes := s.store.GetRecipes(s.ownerID)
	if !okFoods && !okRecipes {
		return false
	}
	s.replace(foods, recipes)
	s.logger.Debug("library loaded from cache", "owner", s.ownerID,
		"foods", len(foods), "recipes", len(recipes))
	return true
}

// Load fetches both collections from the repository and replaces the
// state wholesale. On any fetch error the previous state stays intact.
func (s *Service) Load(ctx context.Context, onProgress domain.ProgressFunc) (domain.SyncResult, error) {
	foods, err := s.repo.FetchSavedFoods(ctx, s.ownerID, s.limit)
	if err != nil {
		s.logger.Error("failed to fetch saved foods", "error", err, "owner", s.ownerID)
		return domain.SyncResult{}, fmt.Errorf("fetch saved foods: %w", err)
	}
	if onProgress != nil {
		onProgress(len(foods), len(foods))
	}

	recipes, err := s.repo.FetchRecipes(ctx, s.ownerID, s.limit, domain.RecipeOrderRecent)
	if err != nil {
		s.logger.Error("failed to fetch recipes", "error", err, "owner", s.ownerID)
		return domain.SyncResult{}, fmt.Errorf("fetch recipes: %w", err)
	}
	if onProgress != nil {
		onProgress(len(foods)+len(recipes), len(foods)+len(recipes))
	}

	s.replace(foods, recipes)
	s.save(foods, recipes)

	s.logger.Debug("library loaded", "owner", s.ownerID,
		"foods", len(foods), "recipes", len(recipes))
	return domain.SyncResult{OwnerID: s.ownerID, Foods: len(foods), Recipes: len(recipes)}, nil
}

// Sync serves the cached copy when fresh, otherwise loads from the
// network.
func (s *Service) Sync(ctx context.Context, onProgress domain.ProgressFunc) (domain.SyncResult, error) {
	if s.store.IsFresh(s.ownerID, cacheMaxAge) && s.LoadFromCache() {
		st := s.Snapshot()
		s.logger.Debug("cache fresh", "owner", s.ownerID)
		return domain.SyncResult{
			OwnerID:   s.ownerID,
			FromCache: true,
			Foods:     len(st.SavedFoods),
			Recipes:   len(st.Recipes),
		}, nil
	}
	return s.Load(ctx, onProgress)
}

// DeleteSavedFood removes a saved food remotely, then replaces the
// state without it. On failure the item stays in place.
func (s *Service) DeleteSavedFood(ctx context.Context, id string) error {
	if err := s.repo.DeleteSavedFood(ctx, s.ownerID, id); err != nil {
		s.logger.Error("failed to delete saved food", "error", err, "id", id)
		return fmt.Errorf("delete saved food: %w", err)
	}

	st := s.Snapshot()
	foods := make([]*domain.SavedFood, 0, len(st.SavedFoods))
	for _, f := range st.SavedFoods {
		if f.ID != id {
			foods = append(foods, f)
		}
	}
	s.replace(foods, st.Recipes)
	s.save(foods, st.Recipes)

	s.logger.Info("deleted saved food", "id", id, "owner", s.ownerID)
	return nil
}

// DeleteRecipe removes a recipe remotely, then replaces the state
// without it. On failure the item stays in place.
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.repo.DeleteRecipe(ctx, s.ownerID, id); err != nil {
		s.logger.Error("failed to delete recipe", "error", err, "id", id)
		return fmt.Errorf("delete recipe: %w", err)
	}

	st := s.Snapshot()
	recipes := make([]*domain.Recipe, 0, len(st.Recipes))
	for _, r := range st.Recipes {
		if r.ID != id {
			recipes = append(recipes, r)
		}
	}
	s.replace(st.SavedFoods, recipes)
	s.save(st.SavedFoods, recipes)

	s.logger.Info("deleted recipe", "id", id, "owner", s.ownerID)
	return nil
}

// replace swaps in both collections atomically, preserving the view
// parameters.
func (s *Service) replace(foods []*domain.SavedFood, recipes []*domain.Recipe) {
	s.mu.Lock()
	s.state.SavedFoods = foods
	s.state.Recipes = recipes
	s.mu.Unlock()
}

func (s *Service) save(foods []*domain.SavedFood, recipes []*domain.Recipe) {
	now := time.Now().Unix()
	if err := s.store.SaveSavedFoods(s.ownerID, foods, now); err != nil {
		s.logger.Error("failed to save foods to store", "error", err, "owner", s.ownerID)
	}
	if err := s.store.SaveRecipes(s.ownerID, recipes, now); err != nil {
		s.logger.Error("failed to save recipes to store", "error", err, "owner", s.ownerID)
	}
}
