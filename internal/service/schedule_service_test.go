package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpsapps/daily/internal/models"
	"github.com/hpsapps/daily/internal/state"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

func strPtr(s string) *string { return &s }

func classroomTeacher(name, class string) models.Teacher {
	role := models.RoleClassroom
	return models.Teacher{ID: name, Name: name, ClassName: strPtr(class), Role: &role}
}

func specialistTeacher(name string) models.Teacher {
	role := models.RoleRFFSpecialist
	return models.Teacher{ID: name, Name: name, Role: &role}
}

func loadedStore(t *testing.T) *state.Store {
	t.Helper()
	store := state.New(nil, nil)

	alice := classroomTeacher("Alice Smith", "3A")
	bob := specialistTeacher("Bob Jones")

	dutySlots := []models.DutySlot{
		{
			ID:        models.DutySlotID("Monday", "11:10-11:35", "Playground", "Alice Smith"),
			TeacherID: alice.ID,
			Day:       "Monday",
			TimeSlot:  "11:10-11:35",
			Area:      "Playground",
			When:      "Recess",
		},
		{
			ID:        models.DutySlotID("Monday", "13:05-13:25", "Canteen", "Bob Jones"),
			TeacherID: bob.ID,
			Day:       "Monday",
			TimeSlot:  "13:05-13:25",
			Area:      "Canteen",
			When:      "First Lunch",
		},
	}

	rffRoster := []models.RFFRosterEntry{
		{
			ID:        models.RFFEntryID("Monday", "9:05-9:45", "Bob", "3A"),
			Day:       "Monday",
			Time:      "9:05-9:45",
			Teacher:   "Bob",
			TeacherID: bob.ID,
			Subject:   "Library",
			Class:     "3A",
		},
		{
			ID:        models.RFFEntryID("Monday", "9:45-10:25", "Bob", "RFF"),
			Day:       "Monday",
			Time:      "9:45-10:25",
			Teacher:   "Bob",
			TeacherID: bob.ID,
			Subject:   "Library",
			Class:     "RFF",
		},
		{
			ID:        models.RFFEntryID("Monday", "10:25-11:10", "Bob", "5B"),
			Day:       "Monday",
			Time:      "10:25-11:10",
			Teacher:   "Bob",
			TeacherID: bob.ID,
			Subject:   "Exec Release",
			Class:     "5B",
		},
	}

	store.LoadRoster([]models.Teacher{alice, bob}, dutySlots, rffRoster)
	return store
}

func newTestScheduleService(store *state.Store) *ScheduleService {
	return NewScheduleService(store, NewTermService(), nil, false, 0, nil, nil)
}

func TestDeriveRequiresLoadedRoster(t *testing.T) {
	store := state.New(nil, nil)
	svc := newTestScheduleService(store)

	_, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRosterNotLoaded, err)
}

func TestDeriveRejectsBadInput(t *testing.T) {
	svc := newTestScheduleService(loadedStore(t))

	_, err := svc.Derive(context.Background(), "", "2025-02-03")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Derive(context.Background(), "Alice Smith", "03/02/2025")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Derive(context.Background(), "Nobody", "2025-02-03")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeriveClassroomTeacherMonday(t *testing.T) {
	svc := newTestScheduleService(loadedStore(t))

	// Monday of Term 1 Week 2.
	schedule, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)

	assert.Equal(t, "Monday", schedule.Day)
	assert.False(t, schedule.NonInstructional)
	assert.Equal(t, 1, schedule.TermInfo.Term)
	assert.Equal(t, 2, schedule.TermInfo.Week)

	require.Len(t, schedule.DailySchedule, 2)
	assert.Equal(t, models.EntryRFF, schedule.DailySchedule[0].Type)
	assert.Equal(t, "9:05-9:45", schedule.DailySchedule[0].Time)
	assert.Contains(t, schedule.DailySchedule[0].Description, "Library")
	assert.Contains(t, schedule.DailySchedule[0].Description, "Bob")

	assert.Equal(t, models.EntryDuty, schedule.DailySchedule[1].Type)
	assert.Equal(t, "11:10-11:35", schedule.DailySchedule[1].Time)
	assert.Equal(t, "Playground", schedule.DailySchedule[1].Location)

	require.Len(t, schedule.Duties, 1)
	assert.Equal(t, models.DutyInherited, schedule.Duties[0].Type)
	require.Len(t, schedule.RFFSlots, 1)
}

func TestDeriveSpecialistClassification(t *testing.T) {
	svc := newTestScheduleService(loadedStore(t))

	schedule, err := svc.Derive(context.Background(), "Bob Jones", "2025-02-03")
	require.NoError(t, err)

	require.Len(t, schedule.DailySchedule, 4)
	assert.Equal(t, models.EntryClass, schedule.DailySchedule[0].Type)
	assert.Equal(t, "3A", schedule.DailySchedule[0].Class)
	assert.Equal(t, models.EntryRFF, schedule.DailySchedule[1].Type)
	assert.Equal(t, "RFF Period", schedule.DailySchedule[1].Description)
	assert.Equal(t, models.EntryExecRelease, schedule.DailySchedule[2].Type)
	assert.Equal(t, models.EntryDuty, schedule.DailySchedule[3].Type)
	assert.Equal(t, "13:05-13:25", schedule.DailySchedule[3].Time)
}

func TestDeriveIsIdempotent(t *testing.T) {
	svc := newTestScheduleService(loadedStore(t))

	first, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	second, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeriveWeekendAndHoliday(t *testing.T) {
	svc := newTestScheduleService(loadedStore(t))

	weekend, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-08")
	require.NoError(t, err)
	assert.True(t, weekend.NonInstructional)
	assert.Empty(t, weekend.DailySchedule)
	assert.Empty(t, weekend.Duties)

	holiday, err := svc.Derive(context.Background(), "Alice Smith", "2025-04-14")
	require.NoError(t, err)
	assert.True(t, holiday.NonInstructional)
	assert.Equal(t, models.DayTypeHoliday, holiday.TermInfo.Type)
	assert.Empty(t, holiday.DailySchedule)
}

func TestDeriveManualDutyExactDateOnly(t *testing.T) {
	store := loadedStore(t)
	store.AddManualDuty(models.DutyAssignment{
		ID:          "manual-1",
		TimeSlot:    "13:45-14:25",
		Location:    "Office",
		Type:        models.DutyManual,
		When:        "Session 3",
		Description: "Bus lines",
		TeacherID:   "Alice Smith",
		Date:        "2025-02-03",
	})
	svc := newTestScheduleService(store)

	target, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	require.Len(t, target.Duties, 2)

	// Same weekday one week later must not inherit the manual duty.
	other, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-10")
	require.NoError(t, err)
	require.Len(t, other.Duties, 1)
}

func TestDeriveRFFOutranksDutyInSameSlot(t *testing.T) {
	store := loadedStore(t)
	store.AddManualDuty(models.DutyAssignment{
		ID:        "manual-clash",
		TimeSlot:  "9:05-9:45",
		Location:  "Hall",
		Type:      models.DutyManual,
		When:      "Session 1",
		TeacherID: "Alice Smith",
		Date:      "2025-02-03",
	})
	svc := newTestScheduleService(store)

	schedule, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)

	var slotEntries []models.ScheduleEntry
	for _, entry := range schedule.DailySchedule {
		if entry.Time == "9:05-9:45" {
			slotEntries = append(slotEntries, entry)
		}
	}
	require.Len(t, slotEntries, 1)
	assert.Equal(t, models.EntryRFF, slotEntries[0].Type)
}

func TestDeriveAppliesDutyOverride(t *testing.T) {
	store := loadedStore(t)
	dutyID := models.DutySlotID("Monday", "11:10-11:35", "Playground", "Alice Smith")
	store.UpsertModifiedInheritedDuty(models.ModifiedInheritedDuty{
		Original: models.OriginalDutyRef{DutyID: dutyID, TimeSlot: "11:10-11:35", TeacherID: "Alice Smith"},
		Updated: models.DutyAssignment{
			ID:          "edited-1",
			TimeSlot:    "11:10-11:35",
			Location:    "Library Steps",
			Type:        models.DutyInherited,
			When:        "Recess",
			Description: "Recess Duty - Library Steps",
			TeacherID:   "Alice Smith",
		},
	})
	svc := newTestScheduleService(store)

	schedule, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	require.Len(t, schedule.Duties, 1)
	assert.Equal(t, "Library Steps", schedule.Duties[0].Location)

	// Reset reverts to the template.
	require.True(t, store.ResetInheritedDuty(dutyID))
	schedule, err = svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, "Playground", schedule.Duties[0].Location)
}

func TestDeriveAppliesRFFOverride(t *testing.T) {
	store := loadedStore(t)
	entryID := models.RFFEntryID("Monday", "9:05-9:45", "Bob", "3A")
	store.UpsertModifiedRFF(models.ModifiedRFF{
		Original: models.OriginalRFFRef{ID: entryID},
		Updated: models.ScheduleEntry{
			ID:          entryID,
			Time:        "9:05-9:45",
			Type:        models.EntryRFF,
			Description: "RFF - moved to the staff room",
		},
	})
	svc := newTestScheduleService(store)

	schedule, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	require.NotEmpty(t, schedule.DailySchedule)
	assert.Equal(t, "RFF - moved to the staff room", schedule.DailySchedule[0].Description)
}

// fakeCache is an in-memory ScheduleCache recording call counts.
type fakeCache struct {
	values  map[string][]byte
	hits    int
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	f.hits++
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.sets++
	f.values[key] = raw
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, _ string) error {
	f.deletes++
	f.values = map[string][]byte{}
	return nil
}

func TestDeriveUsesCache(t *testing.T) {
	cache := newFakeCache()
	svc := NewScheduleService(loadedStore(t), NewTermService(), cache, true, time.Minute, nil, nil)

	first, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	second, err := svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.DailySchedule, second.DailySchedule)

	svc.InvalidateCache(context.Background())
	assert.Equal(t, 1, cache.deletes)

	_, err = svc.Derive(context.Background(), "Alice Smith", "2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}
