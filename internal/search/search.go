package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mfreed/larder/internal/domain"
)

// Result is one quick-find hit with its match distance.
type Result struct {
	Item     domain.LibraryItem
	Distance int // Levenshtein distance, lower is better
}

// Service ranks library items against free-form quick-find queries.
// Unlike the exact substring filter in the library views, quick-find
// tolerates typos and partial words.
type Service struct {
	logger *slog.Logger
}

// NewService creates a quick-find service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Rank returns the items fuzzily matching query, best match first.
// An empty query returns nil.
func (s *Service) Rank(query string, items []domain.LibraryItem) []Result {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 {
		return nil
	}

	// Duplicate names can occur across variants, so match by position,
	// not by name lookup.
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.DisplayName()
	}

	var results []Result
	for i, name := range names {
		rank := fuzzy.RankMatchNormalizedFold(query, name)
		if rank < 0 {
			continue
		}
		results = append(results, Result{Item: items[i], Distance: rank})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	s.logger.Debug("quick-find ranked", "query", query, "hits", len(results))
	return results
}
