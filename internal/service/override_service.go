package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hpsapps/daily/internal/models"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

// OverrideStateWriter is the slice of the state store the override flow
// consumes: manual duty CRUD plus the two override pairing tables.
type OverrideStateWriter interface {
	RosterLoaded() bool
	DutySlots() []models.DutySlot
	RFFRoster() []models.RFFRosterEntry
	ManualDutyByID(id string) (*models.DutyAssignment, bool)
	AddManualDuty(duty models.DutyAssignment)
	UpdateManualDuty(id string, updated models.DutyAssignment) bool
	RemoveManualDuty(id string) bool
	ModifiedInheritedDuties() []models.ModifiedInheritedDuty
	UpsertModifiedInheritedDuty(modified models.ModifiedInheritedDuty)
	ResetInheritedDuty(dutyID string) bool
	ModifiedRFFs() []models.ModifiedRFF
	UpsertModifiedRFF(modified models.ModifiedRFF)
	ResetRFF(entryID string) bool
}

// OverrideService applies operator edits on top of the derived schedule:
// one-off manual duties, edits to inherited duty occurrences and edits to
// RFF grid entries. Edits never touch the roster templates themselves; they
// live as pairings the deriver substitutes on the fly.
type OverrideService struct {
	state  OverrideStateWriter
	logger *zap.Logger
}

// NewOverrideService constructs an OverrideService.
func NewOverrideService(state OverrideStateWriter, logger *zap.Logger) *OverrideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverrideService{state: state, logger: logger}
}

// AddManualDuty records a one-off duty for an exact calendar date.
func (s *OverrideService) AddManualDuty(teacherID, date, timeSlot, location, when, description string) (*models.DutyAssignment, error) {
	if !s.state.RosterLoaded() {
		return nil, appErrors.ErrRosterNotLoaded
	}
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	duty := models.DutyAssignment{
		ID:          uuid.NewString(),
		TimeSlot:    timeSlot,
		Location:    location,
		Type:        models.DutyManual,
		When:        when,
		Description: description,
		TeacherID:   teacherID,
		Date:        date,
	}
	if duty.Description == "" {
		duty.Description = fmt.Sprintf("%s Duty - %s", when, location)
	}
	s.state.AddManualDuty(duty)
	s.logger.Info("manual duty added",
		zap.String("duty_id", duty.ID),
		zap.String("teacher_id", teacherID),
		zap.String("date", date),
	)
	return &duty, nil
}

// UpdateDuty edits the duty entry identified by id on the derived schedule.
// The id is classified in order: a manual duty, the visible id of an already
// edited inherited duty, or an untouched duty template. Inherited edits are
// stored as a pairing keyed by the template's duty id, so a second edit of
// the same slot replaces the first instead of stacking.
func (s *OverrideService) UpdateDuty(id string, updated models.DutyAssignment) (*models.DutyAssignment, error) {
	if !s.state.RosterLoaded() {
		return nil, appErrors.ErrRosterNotLoaded
	}

	if existing, ok := s.state.ManualDutyByID(id); ok {
		updated.ID = existing.ID
		updated.Type = models.DutyManual
		if updated.Date == "" {
			updated.Date = existing.Date
		}
		if updated.TeacherID == "" {
			updated.TeacherID = existing.TeacherID
		}
		s.state.UpdateManualDuty(id, updated)
		return &updated, nil
	}

	if pairing, ok := s.pairingByVisibleID(id); ok {
		return s.upsertInherited(pairing.Original, updated), nil
	}

	if slot, ok := s.dutySlotByID(id); ok {
		original := models.OriginalDutyRef{
			DutyID:    slot.ID,
			TimeSlot:  slot.TimeSlot,
			TeacherID: slot.TeacherID,
		}
		return s.upsertInherited(original, updated), nil
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("duty %q not found", id))
}

// ResetDuty removes the override pairing behind a duty entry so the template
// version re-derives. Accepts either the template id or the visible id of
// the edited entry.
func (s *OverrideService) ResetDuty(id string) error {
	if pairing, ok := s.pairingByVisibleID(id); ok {
		id = pairing.Original.DutyID
	}
	if !s.state.ResetInheritedDuty(id) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no override recorded for duty %q", id))
	}
	return nil
}

// DeleteManualDuty removes a one-off duty. Unlike reset, nothing re-derives
// in its place.
func (s *OverrideService) DeleteManualDuty(id string) error {
	if !s.state.RemoveManualDuty(id) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("manual duty %q not found", id))
	}
	return nil
}

// UpdateRFF edits the RFF entry identified by entryID. As with duties, the
// id may be the grid entry's own id or the visible id of an earlier edit.
func (s *OverrideService) UpdateRFF(entryID string, updated models.ScheduleEntry) (*models.ScheduleEntry, error) {
	if !s.state.RosterLoaded() {
		return nil, appErrors.ErrRosterNotLoaded
	}

	key := entryID
	if pairing, ok := s.rffPairingByVisibleID(entryID); ok {
		key = pairing.Original.ID
	} else if !s.rffEntryExists(entryID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("rff entry %q not found", entryID))
	}

	if updated.ID == "" {
		updated.ID = key
	}
	s.state.UpsertModifiedRFF(models.ModifiedRFF{
		Original: models.OriginalRFFRef{ID: key},
		Updated:  updated,
	})
	return &updated, nil
}

// ResetRFF removes the override pairing behind an RFF entry.
func (s *OverrideService) ResetRFF(entryID string) error {
	if pairing, ok := s.rffPairingByVisibleID(entryID); ok {
		entryID = pairing.Original.ID
	}
	if !s.state.ResetRFF(entryID) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no override recorded for rff entry %q", entryID))
	}
	return nil
}

func (s *OverrideService) upsertInherited(original models.OriginalDutyRef, updated models.DutyAssignment) *models.DutyAssignment {
	if updated.ID == "" || updated.ID == original.DutyID {
		// The edited entry needs its own id so a later edit of the
		// edit can be told apart from the template.
		updated.ID = uuid.NewString()
	}
	updated.Type = models.DutyInherited
	if updated.TeacherID == "" {
		updated.TeacherID = original.TeacherID
	}
	s.state.UpsertModifiedInheritedDuty(models.ModifiedInheritedDuty{
		Original: original,
		Updated:  updated,
	})
	return &updated
}

func (s *OverrideService) pairingByVisibleID(id string) (*models.ModifiedInheritedDuty, bool) {
	for _, m := range s.state.ModifiedInheritedDuties() {
		if m.Updated.ID == id || m.Original.DutyID == id {
			cp := m
			return &cp, true
		}
	}
	return nil, false
}

func (s *OverrideService) rffPairingByVisibleID(id string) (*models.ModifiedRFF, bool) {
	for _, m := range s.state.ModifiedRFFs() {
		if m.Updated.ID == id || m.Original.ID == id {
			cp := m
			return &cp, true
		}
	}
	return nil, false
}

func (s *OverrideService) dutySlotByID(id string) (*models.DutySlot, bool) {
	for _, slot := range s.state.DutySlots() {
		if slot.ID == id {
			cp := slot
			return &cp, true
		}
	}
	return nil, false
}

func (s *OverrideService) rffEntryExists(id string) bool {
	for _, row := range s.state.RFFRoster() {
		if row.ID == id {
			return true
		}
	}
	return false
}

func parseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted YYYY-MM-DD")
	}
	return parsed, nil
}
