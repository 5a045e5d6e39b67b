package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mfreed/larder/internal/domain"
)

// Bucket names
var (
	bucketFoods   = []byte("foods")
	bucketRecipes = []byte("recipes")
	bucketGoals   = []byte("goals")
)

// LibraryStore implements domain.Store using BoltDB.
type LibraryStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewLibraryStore opens (or creates) the cache database under
// baseCacheDir, partitioned per server so that switching servers never
// mixes libraries. An empty baseCacheDir gives a memory-only store.
func NewLibraryStore(baseCacheDir, serverURL string) (*LibraryStore, error) {
	if baseCacheDir == "" {
		return &LibraryStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "larder.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFoods, bucketRecipes, bucketGoals} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LibraryStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *LibraryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LibraryStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *LibraryStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *LibraryStore) deletePrefix(bucket []byte, prefix string) {
	// Clear from memory cache
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB using prefix scan
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Saved foods ===

func (s *LibraryStore) GetSavedFoods(ownerID string) ([]*domain.SavedFood, bool) {
	var foods []*domain.SavedFood
	ok := s.get(bucketFoods, "owner:"+ownerID+":list", &foods)
	return foods, ok
}

func (s *LibraryStore) SaveSavedFoods(ownerID string, foods []*domain.SavedFood, fetchedAt int64) error {
	if err := s.set(bucketFoods, "owner:"+ownerID+":list", foods); err != nil {
		return err
	}
	// Timestamp stored separately for freshness checks
	return s.set(bucketFoods, "owner:"+ownerID+":ts", fetchedAt)
}

// === Recipes ===

func (s *LibraryStore) GetRecipes(ownerID string) ([]*domain.Recipe, bool) {
	var recipes []*domain.Recipe
	ok := s.get(bucketRecipes, "owner:"+ownerID+":list", &recipes)
	return recipes, ok
}

func (s *LibraryStore) SaveRecipes(ownerID string, recipes []*domain.Recipe, fetchedAt int64) error {
	if err := s.set(bucketRecipes, "owner:"+ownerID+":list", recipes); err != nil {
		return err
	}
	return s.set(bucketRecipes, "owner:"+ownerID+":ts", fetchedAt)
}

// === Goals ===

func (s *LibraryStore) GetGoals(ownerID string) (*domain.NutritionGoals, bool) {
	var goals domain.NutritionGoals
	if !s.get(bucketGoals, "owner:"+ownerID, &goals) {
		return nil, false
	}
	return &goals, true
}

func (s *LibraryStore) SaveGoals(ownerID string, goals *domain.NutritionGoals) error {
	return s.set(bucketGoals, "owner:"+ownerID, goals)
}

// === Freshness ===

// IsFresh reports whether both collections were fetched within maxAge.
// Either timestamp missing means stale.
func (s *LibraryStore) IsFresh(ownerID string, maxAge time.Duration) bool {
	cutoff := time.Now().Add(-maxAge).Unix()
	for _, bucket := range [][]byte{bucketFoods, bucketRecipes} {
		var ts int64
		if !s.get(bucket, "owner:"+ownerID+":ts", &ts) {
			return false
		}
		if ts < cutoff {
			return false
		}
	}
	return true
}

// === Invalidation ===

func (s *LibraryStore) InvalidateOwner(ownerID string) {
	prefix := "owner:" + ownerID
	s.deletePrefix(bucketFoods, prefix)
	s.deletePrefix(bucketRecipes, prefix)
	s.deletePrefix(bucketGoals, prefix)
}

func (s *LibraryStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFoods, bucketRecipes, bucketGoals} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
