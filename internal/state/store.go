package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hpsapps/daily/internal/models"
)

// Persister saves and restores whole-state snapshots. Saves are best-effort:
// a failed write loses at most the latest change and is only logged.
type Persister interface {
	Save(ctx context.Context, state models.AppState) error
	Load(ctx context.Context) (*models.AppState, error)
}

// Store holds the application state: roster tables, override deltas and the
// casual directory. All mutations go through explicit methods, one per
// mutation kind, and trigger an asynchronous snapshot save.
type Store struct {
	mu        sync.RWMutex
	state     models.AppState
	persister Persister
	logger    *zap.Logger

	// onChange is invoked after every committed mutation, outside the lock.
	// Used for cache invalidation.
	onChange func()
}

// New constructs a Store with empty defaults. persister may be nil to
// disable persistence.
func New(persister Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{persister: persister, logger: logger}
}

// SetOnChange registers the post-mutation hook.
func (s *Store) SetOnChange(fn func()) {
	s.onChange = fn
}

// Hydrate loads the persisted snapshot. A missing or unreadable snapshot is
// not an error: the store keeps its empty defaults.
func (s *Store) Hydrate(ctx context.Context) {
	if s.persister == nil {
		return
	}
	snapshot, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load state snapshot, using defaults", zap.Error(err))
		return
	}
	if snapshot == nil {
		return
	}

	s.mu.Lock()
	s.state = *snapshot
	s.mu.Unlock()
	s.logger.Info("state snapshot restored",
		zap.Int("teachers", len(snapshot.Teachers)),
		zap.Int("duty_slots", len(snapshot.DutySlots)),
		zap.Int("rff_entries", len(snapshot.RFFRoster)),
	)
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

// RosterLoaded reports whether roster tables have been imported or restored.
func (s *Store) RosterLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RosterLoaded
}

// Teachers returns the teacher directory.
func (s *Store) Teachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Teacher(nil), s.state.Teachers...)
}

// TeacherByID looks a teacher up by id.
func (s *Store) TeacherByID(id string) (*models.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.state.Teachers {
		if t.ID == id {
			cp := t
			return &cp, true
		}
	}
	return nil, false
}

// DutySlots returns the duty roster templates.
func (s *Store) DutySlots() []models.DutySlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DutySlot(nil), s.state.DutySlots...)
}

// RFFRoster returns the weekly RFF grid entries.
func (s *Store) RFFRoster() []models.RFFRosterEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.RFFRosterEntry(nil), s.state.RFFRoster...)
}

// ManualDuties returns the operator-added duty assignments.
func (s *Store) ManualDuties() []models.DutyAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DutyAssignment(nil), s.state.ManualDuties...)
}

// ManualDutyByID looks a manual duty up by id.
func (s *Store) ManualDutyByID(id string) (*models.DutyAssignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.state.ManualDuties {
		if d.ID == id {
			cp := d
			return &cp, true
		}
	}
	return nil, false
}

// ModifiedInheritedDuties returns the duty override pairings.
func (s *Store) ModifiedInheritedDuties() []models.ModifiedInheritedDuty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ModifiedInheritedDuty(nil), s.state.ModifiedInheritedDuties...)
}

// ModifiedRFFs returns the RFF override pairings.
func (s *Store) ModifiedRFFs() []models.ModifiedRFF {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ModifiedRFF(nil), s.state.ModifiedRFFs...)
}

// Casuals returns the casual teacher directory.
func (s *Store) Casuals() []models.CasualTeacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CasualTeacher(nil), s.state.Casuals...)
}

// LoadRoster replaces the roster tables wholesale. Existing overrides are
// kept: pairings whose original no longer resolves become inert.
func (s *Store) LoadRoster(teachers []models.Teacher, dutySlots []models.DutySlot, rffRoster []models.RFFRosterEntry) {
	s.mutate(func(st *models.AppState) {
		st.Teachers = append([]models.Teacher(nil), teachers...)
		st.DutySlots = append([]models.DutySlot(nil), dutySlots...)
		st.RFFRoster = append([]models.RFFRosterEntry(nil), rffRoster...)
		st.RosterLoaded = true
	})
}

// AddManualDuty appends a one-off duty assignment.
func (s *Store) AddManualDuty(duty models.DutyAssignment) {
	s.mutate(func(st *models.AppState) {
		st.ManualDuties = append(st.ManualDuties, duty)
	})
}

// UpdateManualDuty replaces a manual duty in place. Returns false when the
// id is unknown.
func (s *Store) UpdateManualDuty(id string, updated models.DutyAssignment) bool {
	found := false
	s.mutate(func(st *models.AppState) {
		for i, d := range st.ManualDuties {
			if d.ID == id {
				st.ManualDuties[i] = updated
				found = true
				return
			}
		}
	})
	return found
}

// RemoveManualDuty deletes a manual duty by id. A removed manual duty never
// re-derives.
func (s *Store) RemoveManualDuty(id string) bool {
	found := false
	s.mutate(func(st *models.AppState) {
		kept := st.ManualDuties[:0]
		for _, d := range st.ManualDuties {
			if d.ID == id {
				found = true
				continue
			}
			kept = append(kept, d)
		}
		st.ManualDuties = kept
	})
	return found
}

// UpsertModifiedInheritedDuty applies an edit on top of a duty template.
// An existing pairing for the same DutyID is replaced in place.
func (s *Store) UpsertModifiedInheritedDuty(modified models.ModifiedInheritedDuty) {
	s.mutate(func(st *models.AppState) {
		for i, m := range st.ModifiedInheritedDuties {
			if m.Original.DutyID == modified.Original.DutyID {
				st.ModifiedInheritedDuties[i] = modified
				return
			}
		}
		st.ModifiedInheritedDuties = append(st.ModifiedInheritedDuties, modified)
	})
}

// ResetInheritedDuty removes the override pairing for a duty template; the
// next derivation reverts to the template entry.
func (s *Store) ResetInheritedDuty(dutyID string) bool {
	found := false
	s.mutate(func(st *models.AppState) {
		kept := st.ModifiedInheritedDuties[:0]
		for _, m := range st.ModifiedInheritedDuties {
			if m.Original.DutyID == dutyID {
				found = true
				continue
			}
			kept = append(kept, m)
		}
		st.ModifiedInheritedDuties = kept
	})
	return found
}

// UpsertModifiedRFF applies an edit on top of an RFF grid entry.
func (s *Store) UpsertModifiedRFF(modified models.ModifiedRFF) {
	s.mutate(func(st *models.AppState) {
		for i, m := range st.ModifiedRFFs {
			if m.Original.ID == modified.Original.ID {
				st.ModifiedRFFs[i] = modified
				return
			}
		}
		st.ModifiedRFFs = append(st.ModifiedRFFs, modified)
	})
}

// ResetRFF removes the override pairing for an RFF grid entry.
func (s *Store) ResetRFF(entryID string) bool {
	found := false
	s.mutate(func(st *models.AppState) {
		kept := st.ModifiedRFFs[:0]
		for _, m := range st.ModifiedRFFs {
			if m.Original.ID == entryID {
				found = true
				continue
			}
			kept = append(kept, m)
		}
		st.ModifiedRFFs = kept
	})
	return found
}

// AddCasual appends a casual teacher record.
func (s *Store) AddCasual(casual models.CasualTeacher) {
	s.mutate(func(st *models.AppState) {
		st.Casuals = append(st.Casuals, casual)
	})
}

// UpdateCasual replaces a casual record by id.
func (s *Store) UpdateCasual(casual models.CasualTeacher) bool {
	found := false
	s.mutate(func(st *models.AppState) {
		for i, c := range st.Casuals {
			if c.ID == casual.ID {
				st.Casuals[i] = casual
				found = true
				return
			}
		}
	})
	return found
}

// DeleteCasual removes a casual record by id.
func (s *Store) DeleteCasual(id string) bool {
	found := false
	s.mutate(func(st *models.AppState) {
		kept := st.Casuals[:0]
		for _, c := range st.Casuals {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		st.Casuals = kept
	})
	return found
}

// mutate applies fn under the write lock, stamps LastDataUpdate, then kicks
// off the fire-and-forget snapshot save and the change hook.
func (s *Store) mutate(fn func(st *models.AppState)) {
	s.mu.Lock()
	fn(&s.state)
	s.state.LastDataUpdate = time.Now().UTC()
	snapshot := copyState(s.state)
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange()
	}
	if s.persister != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.persister.Save(ctx, snapshot); err != nil {
				s.logger.Warn("failed to persist state snapshot", zap.Error(err))
			}
		}()
	}
}

func copyState(st models.AppState) models.AppState {
	cp := st
	cp.Teachers = append([]models.Teacher(nil), st.Teachers...)
	cp.DutySlots = append([]models.DutySlot(nil), st.DutySlots...)
	cp.RFFRoster = append([]models.RFFRosterEntry(nil), st.RFFRoster...)
	cp.ManualDuties = append([]models.DutyAssignment(nil), st.ManualDuties...)
	cp.ModifiedInheritedDuties = append([]models.ModifiedInheritedDuty(nil), st.ModifiedInheritedDuties...)
	cp.ModifiedRFFs = append([]models.ModifiedRFF(nil), st.ModifiedRFFs...)
	cp.Casuals = append([]models.CasualTeacher(nil), st.Casuals...)
	return cp
}
