package tui

import (
	"github.com/mfreed/larder/internal/domain"
	"github.com/mfreed/larder/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// LibraryLoadedMsg signals that the library was fetched or served
// from cache.
type LibraryLoadedMsg struct {
	Result domain.SyncResult
}

// SyncProgressMsg carries a progress update during a refresh.
type SyncProgressMsg struct {
	Progress domain.SyncProgress
}

// ItemDeletedMsg signals that an item was removed from the library.
type ItemDeletedMsg struct {
	Key  string
	Name string
}

// QuickFindResultsMsg carries ranked quick-find hits.
type QuickFindResultsMsg struct {
	Results []search.Result
	Query   string
}

// GoalsLoadedMsg signals that nutrition goals are available.
type GoalsLoadedMsg struct {
	Goals domain.NutritionGoals
}

// GoalsSavedMsg signals that goals were accepted by the server.
type GoalsSavedMsg struct {
	Goals domain.NutritionGoals
}

// StatusClearMsg clears a transient status line.
type StatusClearMsg struct{}
