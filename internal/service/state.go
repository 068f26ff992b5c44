package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/paging"
)

// Snapshot is one successfully loaded data set. Snapshots are never mutated
// after they are stored; a refresh replaces the whole value.
type Snapshot struct {
	Records  []domain.Record
	Summary  domain.Summary
	LoadedAt time.Time
	Version  int
}

// Current is a consistent read of the state taken under a single lock
type Current struct {
	Snapshot Snapshot
	Criteria domain.Criteria
	Page     int
	Err      error
}

// State holds everything the dashboard needs between interactions: the loaded
// data, the active filters, the current page and the last refresh error.
type State struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	criteria domain.Criteria
	page     int
	lastErr  error
}

func NewState() *State {
	return &State{page: 1}
}

// Current returns the loaded snapshot with the filters and page that apply to
// it. It returns domain.ErrNotLoaded, joined with the last refresh error if
// there was one, until the first refresh succeeds.
func (s *State) Current() (Current, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		if s.lastErr != nil {
			return Current{}, fmt.Errorf("%w: %w", domain.ErrNotLoaded, s.lastErr)
		}
		return Current{}, domain.ErrNotLoaded
	}

	return Current{
		Snapshot: *s.snapshot,
		Criteria: s.criteria,
		Page:     s.page,
		Err:      s.lastErr,
	}, nil
}

// Replace installs freshly fetched data, clears the error state and returns
// to the first page.
func (s *State) Replace(records []domain.Record, summary domain.Summary, loadedAt time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := 1
	if s.snapshot != nil {
		version = s.snapshot.Version + 1
	}

	s.snapshot = &Snapshot{
		Records:  records,
		Summary:  summary,
		LoadedAt: loadedAt,
		Version:  version,
	}
	s.lastErr = nil
	s.page = 1

	return *s.snapshot
}

// Fail records a refresh error. The previous snapshot stays in place.
func (s *State) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *State) Criteria() domain.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// SetCriteria changes the active filters and resets to the first page
func (s *State) SetCriteria(c domain.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.page = 1
}

// UpdateCriteria applies fn to the active filters and resets to the first page
func (s *State) UpdateCriteria(fn func(*domain.Criteria)) domain.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.criteria)
	s.page = 1
	return s.criteria
}

func (s *State) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetPage moves to page, clamped to [1, totalPages]
func (s *State) SetPage(page, totalPages int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = paging.Clamp(page, totalPages)
	return s.page
}

// MovePage moves delta pages from the current one, clamped to [1, totalPages]
func (s *State) MovePage(delta, totalPages int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = paging.Clamp(s.page+delta, totalPages)
	return s.page
}
