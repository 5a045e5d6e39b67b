package goals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreed/larder/internal/domain"
)

type fakeGoalsRepo struct {
	goals    *domain.NutritionGoals
	fetchErr error
	saveErr  error
	updated  []domain.NutritionGoals
}

func (r *fakeGoalsRepo) FetchGoals(_ context.Context, _ string) (*domain.NutritionGoals, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.goals, nil
}

func (r *fakeGoalsRepo) UpdateGoals(_ context.Context, _ string, goals domain.NutritionGoals) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.updated = append(r.updated, goals)
	return nil
}

type goalsStore struct {
	goals map[string]*domain.NutritionGoals
}

func (s *goalsStore) GetSavedFoods(string) ([]*domain.SavedFood, bool)          { return nil, false }
func (s *goalsStore) SaveSavedFoods(string, []*domain.SavedFood, int64) error   { return nil }
func (s *goalsStore) GetRecipes(string) ([]*domain.Recipe, bool)                { return nil, false }
func (s *goalsStore) SaveRecipes(string, []*domain.Recipe, int64) error         { return nil }
func (s *goalsStore) IsFresh(string, time.Duration) bool                        { return false }
func (s *goalsStore) InvalidateOwner(string)                                    {}
func (s *goalsStore) InvalidateAll()                                            {}
func (s *goalsStore) Close() error                                              { return nil }

func (s *goalsStore) GetGoals(owner string) (*domain.NutritionGoals, bool) {
	g, ok := s.goals[owner]
	return g, ok
}

func (s *goalsStore) SaveGoals(owner string, goals *domain.NutritionGoals) error {
	s.goals[owner] = goals
	return nil
}

func TestFetchCachesGoals(t *testing.T) {
	repo := &fakeGoalsRepo{goals: &domain.NutritionGoals{OwnerID: "u1", DailyCalories: 2000}}
	store := &goalsStore{goals: make(map[string]*domain.NutritionGoals)}
	svc := NewService(repo, store, "u1", nil)

	goals, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2000, goals.DailyCalories)

	cached, ok := svc.Cached()
	require.True(t, ok)
	assert.Equal(t, 2000, cached.DailyCalories)
}

func TestUpdateFailureLeavesCacheIntact(t *testing.T) {
	repo := &fakeGoalsRepo{goals: &domain.NutritionGoals{OwnerID: "u1", DailyCalories: 2000}}
	store := &goalsStore{goals: make(map[string]*domain.NutritionGoals)}
	svc := NewService(repo, store, "u1", nil)

	_, err := svc.Fetch(context.Background())
	require.NoError(t, err)

	repo.saveErr = domain.ErrServerUnreachable
	err = svc.Update(context.Background(), domain.NutritionGoals{OwnerID: "u1", DailyCalories: 9999})
	require.Error(t, err)

	cached, ok := svc.Cached()
	require.True(t, ok)
	assert.Equal(t, 2000, cached.DailyCalories, "failed update must not clobber the cached targets")
}

func TestUpdateSuccessRefreshesCache(t *testing.T) {
	repo := &fakeGoalsRepo{}
	store := &goalsStore{goals: make(map[string]*domain.NutritionGoals)}
	svc := NewService(repo, store, "u1", nil)

	goals := domain.NutritionGoals{OwnerID: "u1", DailyCalories: 2400, TrackCarbs: true}
	require.NoError(t, svc.Update(context.Background(), goals))
	require.Len(t, repo.updated, 1)

	cached, ok := svc.Cached()
	require.True(t, ok)
	assert.Equal(t, 2400, cached.DailyCalories)
	assert.True(t, cached.TrackCarbs)
}
