package domain

// ProgressFunc reports incremental load progress (loaded, total).
type ProgressFunc func(loaded, total int)

// SyncProgress reports progress while refreshing the library.
type SyncProgress struct {
	OwnerID   string
	Loaded    int
	Total     int
	Done      bool
	FromCache bool
	Err       error
}

// SyncObserver receives progress updates during refresh operations.
type SyncObserver interface {
	OnProgress(progress SyncProgress)
}

// NoOpObserver discards progress updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnProgress(SyncProgress) {}

// SyncResult summarizes a completed library refresh.
type SyncResult struct {
	OwnerID   string
	FromCache bool
	Foods     int
	Recipes   int
}
