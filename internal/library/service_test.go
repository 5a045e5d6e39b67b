package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreed/larder/internal/domain"
)

// fakeRepo implements domain.LibraryRepository in memory.
type fakeRepo struct {
	foods    []*domain.SavedFood
	recipes  []*domain.Recipe
	fetchErr error
	delErr   error
	deleted  []string
}

func (r *fakeRepo) FetchSavedFoods(_ context.Context, _ string, _ int) ([]*domain.SavedFood, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.foods, nil
}

func (r *fakeRepo) FetchRecipes(_ context.Context, _ string, _ int, _ domain.RecipeOrder) ([]*domain.Recipe, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.recipes, nil
}

func (r *fakeRepo) DeleteSavedFood(_ context.Context, _ string, id string) error {
	if r.delErr != nil {
		return r.delErr
	}
	r.deleted = append(r.deleted, "food:"+id)
	return nil
}

func (r *fakeRepo) DeleteRecipe(_ context.Context, _ string, id string) error {
	if r.delErr != nil {
		return r.delErr
	}
	r.deleted = append(r.deleted, "recipe:"+id)
	return nil
}

// fakeStore implements domain.Store in memory.
type fakeStore struct {
	foods   map[string][]*domain.SavedFood
	recipes map[string][]*domain.Recipe
	fresh   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		foods:   make(map[string][]*domain.SavedFood),
		recipes: make(map[string][]*domain.Recipe),
	}
}

func (s *fakeStore) GetSavedFoods(owner string) ([]*domain.SavedFood, bool) {
	f, ok := s.foods[owner]
	return f, ok
}

func (s *fakeStore) SaveSavedFoods(owner string, foods []*domain.SavedFood, _ int64) error {
	s.foods[owner] = foods
	return nil
}

func (s *fakeStore) GetRecipes(owner string) ([]*domain.Recipe, bool) {
	r, ok := s.recipes[owner]
	return r, ok
}

func (s *fakeStore) SaveRecipes(owner string, recipes []*domain.Recipe, _ int64) error {
	s.recipes[owner] = recipes
	return nil
}

func (s *fakeStore) GetGoals(string) (*domain.NutritionGoals, bool) { return nil, false }
func (s *fakeStore) SaveGoals(string, *domain.NutritionGoals) error { return nil }
func (s *fakeStore) IsFresh(string, time.Duration) bool             { return s.fresh }
func (s *fakeStore) InvalidateOwner(string)                         {}
func (s *fakeStore) InvalidateAll()                                 {}
func (s *fakeStore) Close() error                                   { return nil }

func newTestService(repo *fakeRepo, store *fakeStore) *Service {
	return NewService(repo, store, "owner-1", nil)
}

func TestLoadReplacesStateWholesale(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		foods:   []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
		recipes: []*domain.Recipe{recipe("b", "Apple Pie", 2, now)},
	}
	svc := newTestService(repo, newFakeStore())

	res, err := svc.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Foods)
	assert.Equal(t, 1, res.Recipes)
	assert.False(t, res.FromCache)

	assert.Len(t, svc.All(), 2)
	assert.Len(t, svc.Saved(), 1)
	assert.Len(t, svc.Composed(), 1)
}

func TestLoadFailureLeavesPreviousStateIntact(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		foods: []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
	}
	svc := newTestService(repo, newFakeStore())
	_, err := svc.Load(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, svc.All(), 1)

	repo.fetchErr = domain.ErrServerUnreachable
	_, err = svc.Load(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerUnreachable)

	// Old state survives the failed refresh
	assert.Len(t, svc.All(), 1)
	assert.Equal(t, "Banana Smoothie", svc.All()[0].DisplayName())
}

func TestLoadPersistsToStore(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{foods: []*domain.SavedFood{food("a", "Oatmeal", 1, now)}}
	store := newFakeStore()
	svc := newTestService(repo, store)

	_, err := svc.Load(context.Background(), nil)
	require.NoError(t, err)

	saved, ok := store.GetSavedFoods("owner-1")
	require.True(t, ok)
	assert.Len(t, saved, 1)
}

func TestSyncServesFreshCache(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	store.fresh = true
	store.foods["owner-1"] = []*domain.SavedFood{food("a", "Cached", 0, now)}

	// Repo that fails loudly if touched
	repo := &fakeRepo{fetchErr: errors.New("network should not be used")}
	svc := newTestService(repo, store)

	res, err := svc.Sync(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Equal(t, 1, res.Foods)
	assert.Equal(t, "Cached", svc.All()[0].DisplayName())
}

func TestSyncFallsThroughToNetworkWhenStale(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{foods: []*domain.SavedFood{food("a", "Fresh Fetch", 0, now)}}
	svc := newTestService(repo, newFakeStore())

	res, err := svc.Sync(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 1, res.Foods)
}

func TestDeleteSavedFoodRemovesOnlyThatVariant(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		foods:   []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
		recipes: []*domain.Recipe{recipe("b", "Apple Pie", 2, now)},
	}
	svc := newTestService(repo, newFakeStore())
	_, err := svc.Load(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSavedFood(context.Background(), "a"))
	assert.Equal(t, []string{"food:a"}, repo.deleted)

	assert.Empty(t, svc.Saved())
	require.Len(t, svc.Composed(), 1)
	assert.Equal(t, "Apple Pie", svc.Composed()[0].DisplayName())
}

func TestDeleteFailureLeavesItemInPlace(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		foods: []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
	}
	svc := newTestService(repo, newFakeStore())
	_, err := svc.Load(context.Background(), nil)
	require.NoError(t, err)

	repo.delErr = domain.ErrServerUnreachable
	err = svc.DeleteSavedFood(context.Background(), "a")
	require.Error(t, err)
	assert.Len(t, svc.Saved(), 1)
}

func TestDeleteRecipeLeavesSavedFoodsAlone(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		foods:   []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
		recipes: []*domain.Recipe{recipe("b", "Apple Pie", 2, now)},
	}
	svc := newTestService(repo, newFakeStore())
	_, err := svc.Load(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(context.Background(), "b"))
	assert.Empty(t, svc.Composed())
	assert.Len(t, svc.Saved(), 1)
}

func TestViewParametersSurviveReload(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{
		foods: []*domain.SavedFood{
			food("a", "Banana Smoothie", 5, now),
			food("b", "Apple Slices", 1, now),
		},
	}
	svc := newTestService(repo, newFakeStore())
	_, err := svc.Load(context.Background(), nil)
	require.NoError(t, err)

	svc.SetQuery("apple")
	svc.SetSort(SortByName)

	_, err = svc.Load(context.Background(), nil)
	require.NoError(t, err)

	got := svc.All()
	require.Len(t, got, 1)
	assert.Equal(t, "Apple Slices", got[0].DisplayName())
}
