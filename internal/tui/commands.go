package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfreed/larder/internal/domain"
	"github.com/mfreed/larder/internal/goals"
	"github.com/mfreed/larder/internal/library"
	"github.com/mfreed/larder/internal/search"
)

// Command factories for async operations

// SyncLibraryCmd loads the library, serving a fresh cache when one
// exists and hitting the server otherwise.
func SyncLibraryCmd(svc *library.Service, onProgress domain.ProgressFunc) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		result, err := svc.Sync(ctx, onProgress)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading library"}
		}
		return LibraryLoadedMsg{Result: result}
	}
}

// RefreshLibraryCmd forces a server fetch, bypassing the cache.
func RefreshLibraryCmd(svc *library.Service, onProgress domain.ProgressFunc) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		result, err := svc.Load(ctx, onProgress)
		if err != nil {
			return ErrMsg{Err: err, Context: "refreshing library"}
		}
		return LibraryLoadedMsg{Result: result}
	}
}

// DeleteItemCmd removes a saved food or recipe from the library.
func DeleteItemCmd(svc *library.Service, item domain.LibraryItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		if item.Variant() == domain.VariantSaved {
			err = svc.DeleteSavedFood(ctx, item.ItemID())
		} else {
			err = svc.DeleteRecipe(ctx, item.ItemID())
		}
		if err != nil {
			return ErrMsg{Err: err, Context: "deleting " + item.DisplayName()}
		}
		return ItemDeletedMsg{Key: domain.ItemKey(item), Name: item.DisplayName()}
	}
}

// QuickFindCmd ranks library items against a quick-find query.
func QuickFindCmd(svc *search.Service, query string, items []domain.LibraryItem) tea.Cmd {
	return func() tea.Msg {
		return QuickFindResultsMsg{Results: svc.Rank(query, items), Query: query}
	}
}

// LoadGoalsCmd fetches nutrition goals, preferring the cache.
func LoadGoalsCmd(svc *goals.Service) tea.Cmd {
	return func() tea.Msg {
		if cached, ok := svc.Cached(); ok {
			return GoalsLoadedMsg{Goals: *cached}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fetched, err := svc.Fetch(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading goals"}
		}
		return GoalsLoadedMsg{Goals: *fetched}
	}
}

// SaveGoalsCmd pushes edited goals to the server.
func SaveGoalsCmd(svc *goals.Service, edited domain.NutritionGoals) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.Update(ctx, edited); err != nil {
			return ErrMsg{Err: err, Context: "saving goals"}
		}
		return GoalsSavedMsg{Goals: edited}
	}
}

// ClearStatusCmd clears the status line after a delay.
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return StatusClearMsg{}
	})
}

// WaitForProgressCmd waits for the next sync progress update.
func WaitForProgressCmd(ch <-chan domain.SyncProgress) tea.Cmd {
	return func() tea.Msg {
		progress, ok := <-ch
		if !ok {
			return nil
		}
		return SyncProgressMsg{Progress: progress}
	}
}
