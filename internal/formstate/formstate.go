package formstate

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"github.com/rgodse/claimdesk/internal/claims"
	"github.com/rgodse/claimdesk/internal/storage"
)

// StorageKey is the session-storage key for the in-progress aggregate.
const StorageKey = "claimsFormData"

// SectionSaver submits one section's data to the backend. Implemented by
// api.AuthClient.
type SectionSaver interface {
	SaveClaimSection(ctx context.Context, claimID string, section claims.Section, payload any) error
}

// Store is the multi-step intake form's state machine. It owns the form
// aggregate, the active section, and the per-section markers of what was
// last successfully submitted. The aggregate is mirrored to session-scoped
// storage after every successful mutation so an interrupted flow can be
// resumed.
type Store struct {
	mirror *storage.Store
	logger *slog.Logger

	mu        sync.RWMutex
	aggregate claims.FormAggregate
	active    claims.Section
	claimID   string
	submitted map[claims.Section]any
}

// New returns a Store mirroring to the given persistence adapter. A nil
// logger disables logging.
func New(mirror *storage.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		mirror:    mirror,
		logger:    logger,
		aggregate: claims.DefaultAggregate(),
		submitted: make(map[claims.Section]any),
	}
}

// Begin enters the intake flow for the given claim id. Any session mirror
// left by an interrupted flow is merged over fresh defaults, so fields
// introduced since the snapshot was written keep their defaults.
func (s *Store) Begin(claimID string) {
	agg := claims.DefaultAggregate()
	if s.mirror.Get(storage.Session, StorageKey, &agg) {
		s.logger.Info("resumed in-progress claim form", "claim", claimID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimID = claimID
	s.active = claims.SectionCustomer
	s.submitted = make(map[claims.Section]any)
	s.setAggregateLocked(agg)
}

// Initialize replaces the entire aggregate wholesale. Used for fresh-start
// defaults and for loading a fetched record being edited.
func (s *Store) Initialize(agg claims.FormAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAggregateLocked(agg)
}

// UpdateField writes one leaf value, leaving all siblings untouched, and
// mirrors the aggregate to session storage.
func (s *Store) UpdateField(f claims.Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.aggregate.Set(f, value); err != nil {
		return err
	}
	s.mirror.Set(storage.Session, StorageKey, s.aggregate)
	return nil
}

// Reset restores the default aggregate, clears the session mirror, and
// rewinds to the first section.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregate = claims.DefaultAggregate()
	s.active = claims.SectionCustomer
	s.claimID = ""
	s.submitted = make(map[claims.Section]any)
	s.mirror.Delete(storage.Session, StorageKey)
}

// Aggregate returns a copy of the current aggregate.
func (s *Store) Aggregate() claims.FormAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregate
}

// Active returns the section currently being edited.
func (s *Store) Active() claims.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ClaimID returns the claim identifier this flow is editing.
func (s *Store) ClaimID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claimID
}

// Advance validates the active section and, when its data differs from the
// last successfully submitted snapshot, submits it to the backend before
// moving forward. It returns done=true when the final section completed.
//
// Validation failures come back in problems and block the transition; a
// submission error aborts the transition with every piece of state intact,
// so the user can retry by advancing again.
func (s *Store) Advance(ctx context.Context, saver SectionSaver) (done bool, problems map[string]string, err error) {
	s.mu.RLock()
	section := s.active
	aggregate := s.aggregate
	claimID := s.claimID
	lastSaved := s.submitted[section]
	s.mu.RUnlock()

	if problems = claims.ValidateSection(aggregate, section); len(problems) > 0 {
		return false, problems, nil
	}

	payload := aggregate.SectionPayload(section)
	if !reflect.DeepEqual(payload, lastSaved) {
		if err = saver.SaveClaimSection(ctx, claimID, section, payload); err != nil {
			s.logger.Warn("section save failed", "section", section.Key(), "claim", claimID, "err", err)
			return false, nil, err
		}
	}

	s.mu.Lock()
	s.submitted[section] = payload
	if section == claims.SectionIssuance {
		s.mu.Unlock()
		s.logger.Info("claim intake complete", "claim", claimID)
		s.Reset()
		return true, nil, nil
	}
	s.active = section + 1
	s.mu.Unlock()
	return false, nil, nil
}

// Back moves one section backward. It reports false when already on the
// first section.
func (s *Store) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == claims.SectionCustomer {
		return false
	}
	s.active--
	return true
}

func (s *Store) setAggregateLocked(agg claims.FormAggregate) {
	s.aggregate = agg
	s.mirror.Set(storage.Session, StorageKey, s.aggregate)
}
