package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/rgodse/claimdesk/internal/claims"
)

// Snapshot represents the latest claim data available to the UI.
type Snapshot struct {
	Claims              []claims.Claim
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. The background
// poller writes, the UI reads; both get defensive copies.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(list []claims.Claim, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Claims = cloneClaims(list)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Claims = cloneClaims(s.snapshot.Claims)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneClaims(items []claims.Claim) []claims.Claim {
	if len(items) == 0 {
		return nil
	}
	dup := make([]claims.Claim, len(items))
	copy(dup, items)
	return dup
}
