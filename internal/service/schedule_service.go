package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hpsapps/daily/internal/models"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

// DateLayout is the wire format for calendar dates throughout the API.
const DateLayout = "2006-01-02"

const scheduleCachePrefix = "schedule:"

// ScheduleStateReader is the slice of the state store the deriver consumes.
type ScheduleStateReader interface {
	RosterLoaded() bool
	TeacherByID(id string) (*models.Teacher, bool)
	DutySlots() []models.DutySlot
	RFFRoster() []models.RFFRosterEntry
	ManualDuties() []models.DutyAssignment
	ModifiedInheritedDuties() []models.ModifiedInheritedDuty
	ModifiedRFFs() []models.ModifiedRFF
}

// TermResolver resolves a date against the school calendar.
type TermResolver interface {
	Resolve(date time.Time) models.TermInfo
}

// ScheduleCache caches derived schedules between mutations.
type ScheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DerivationObserver receives timing for each derivation. Implemented by the
// metrics service; nil disables observation.
type DerivationObserver interface {
	ObserveDerivation(cached bool, duration time.Duration)
}

// ScheduleService derives the daily cover schedule for an absent teacher.
// Schedules are computed on demand from the roster templates plus the
// override deltas; nothing derived is ever written back to the store.
type ScheduleService struct {
	state        ScheduleStateReader
	terms        TermResolver
	cache        ScheduleCache
	cacheEnabled bool
	cacheTTL     time.Duration
	observer     DerivationObserver
	logger       *zap.Logger
}

// NewScheduleService constructs a ScheduleService. cache may be nil, which
// disables caching regardless of cacheEnabled; observer may be nil.
func NewScheduleService(state ScheduleStateReader, terms TermResolver, cache ScheduleCache, cacheEnabled bool, cacheTTL time.Duration, observer DerivationObserver, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		state:        state,
		terms:        terms,
		cache:        cache,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
		observer:     observer,
		logger:       logger,
	}
}

// Derive computes the schedule for one teacher on one date. Derivation is
// idempotent: repeated calls with unchanged state yield the same schedule.
func (s *ScheduleService) Derive(ctx context.Context, teacherID, dateStr string) (*models.Schedule, error) {
	if teacherID == "" || dateStr == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id and date are required")
	}
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted YYYY-MM-DD")
	}
	if !s.state.RosterLoaded() {
		return nil, appErrors.ErrRosterNotLoaded
	}
	teacher, ok := s.state.TeacherByID(teacherID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %q not found", teacherID))
	}

	started := time.Now()
	cacheKey := scheduleCacheKey(teacherID, dateStr)
	if s.cacheEnabled {
		var cached models.Schedule
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			if s.observer != nil {
				s.observer.ObserveDerivation(true, time.Since(started))
			}
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("schedule cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	schedule := s.derive(*teacher, date, dateStr)
	if s.observer != nil {
		s.observer.ObserveDerivation(false, time.Since(started))
	}

	if s.cacheEnabled {
		if err := s.cache.Set(ctx, cacheKey, schedule, s.cacheTTL); err != nil {
			s.logger.Warn("schedule cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return schedule, nil
}

// InvalidateCache drops every cached schedule. Wired to the store's change
// hook so any mutation flushes stale derivations.
func (s *ScheduleService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, scheduleCachePrefix+"*"); err != nil {
		s.logger.Warn("schedule cache invalidation failed", zap.Error(err))
	}
}

func scheduleCacheKey(teacherID, date string) string {
	return scheduleCachePrefix + teacherID + ":" + date
}

func (s *ScheduleService) derive(teacher models.Teacher, date time.Time, dateStr string) *models.Schedule {
	weekday := date.Weekday().String()
	termInfo := s.terms.Resolve(date)

	schedule := &models.Schedule{
		Teacher:       teacher,
		Date:          dateStr,
		Day:           weekday,
		FormattedDate: date.Format("Monday, 2 January 2006"),
		TermInfo:      termInfo,
	}

	// Weekends and non-term days carry no derived entries at all.
	if !isWeekday(weekday) || termInfo.Type != models.DayTypeTerm {
		schedule.NonInstructional = true
		return schedule
	}

	rffEntries := s.rffEntriesFor(teacher, weekday, schedule)
	duties := s.dutiesFor(teacher, weekday, dateStr)
	schedule.Duties = duties

	schedule.DailySchedule = mergeEntries(rffEntries, duties)
	return schedule
}

// rffEntriesFor selects and classifies the RFF grid rows that concern the
// absent teacher, with overrides already substituted. It also fills the
// schedule's raw RFFSlots list for the export consumer.
func (s *ScheduleService) rffEntriesFor(teacher models.Teacher, weekday string, schedule *models.Schedule) []models.ScheduleEntry {
	overrides := make(map[string]models.ScheduleEntry)
	for _, m := range s.state.ModifiedRFFs() {
		overrides[m.Original.ID] = m.Updated
	}

	var entries []models.ScheduleEntry
	for _, row := range s.state.RFFRoster() {
		if row.Day != weekday {
			continue
		}

		var entry models.ScheduleEntry
		switch {
		case teacher.IsRFFSpecialist() && row.TeacherID == teacher.ID:
			entry = specialistEntry(row)
		case !teacher.IsRFFSpecialist() && teacher.Class() != "" && row.Class == teacher.Class():
			// A specialist takes this teacher's class, releasing the
			// teacher for RFF.
			entry = models.ScheduleEntry{
				ID:          row.ID,
				Time:        row.Time,
				Type:        models.EntryRFF,
				Description: fmt.Sprintf("RFF - %s (class covered by %s)", row.Subject, row.Teacher),
				TeacherName: row.Teacher,
			}
		default:
			continue
		}

		schedule.RFFSlots = append(schedule.RFFSlots, row)
		if updated, ok := overrides[row.ID]; ok {
			entry = updated
		}
		entries = append(entries, entry)
	}
	return entries
}

// specialistEntry classifies one grid row from the specialist's own column.
func specialistEntry(row models.RFFRosterEntry) models.ScheduleEntry {
	entry := models.ScheduleEntry{ID: row.ID, Time: row.Time, TeacherName: row.Teacher}
	switch {
	case strings.EqualFold(row.Class, "RFF"):
		entry.Type = models.EntryRFF
		entry.Description = "RFF Period"
	case strings.HasPrefix(row.Subject, "Exec"):
		entry.Type = models.EntryExecRelease
		entry.Description = fmt.Sprintf("%s - %s", row.Subject, row.Class)
		entry.Class = row.Class
	default:
		entry.Type = models.EntryClass
		entry.Description = fmt.Sprintf("%s with %s", row.Subject, row.Class)
		entry.Class = row.Class
	}
	return entry
}

// dutiesFor instantiates the weekday's duty templates for the teacher,
// substitutes edited duties and appends date-exact manual additions.
func (s *ScheduleService) dutiesFor(teacher models.Teacher, weekday, dateStr string) []models.DutyAssignment {
	overrides := make(map[string]models.DutyAssignment)
	for _, m := range s.state.ModifiedInheritedDuties() {
		overrides[m.Original.DutyID] = m.Updated
	}

	var duties []models.DutyAssignment
	for _, slot := range s.state.DutySlots() {
		if slot.TeacherID != teacher.ID || slot.Day != weekday {
			continue
		}
		duty := models.DutyAssignment{
			ID:          slot.ID,
			TimeSlot:    slot.TimeSlot,
			Location:    slot.Area,
			Type:        models.DutyInherited,
			When:        slot.When,
			Description: fmt.Sprintf("%s Duty - %s", slot.When, slot.Area),
			TeacherID:   slot.TeacherID,
		}
		if updated, ok := overrides[slot.ID]; ok {
			duty = updated
		}
		duties = append(duties, duty)
	}

	for _, manual := range s.state.ManualDuties() {
		if manual.TeacherID == teacher.ID && manual.Date == dateStr {
			duties = append(duties, manual)
		}
	}
	return duties
}

// mergeEntries lays the classified entries over the canonical bell schedule,
// at most one entry per slot. RFF, class and exec-release entries outrank
// duties in the same slot; slots with nothing scheduled are omitted. Entries
// whose time matches no canonical slot are appended after the ordered ones so
// unusual roster times are never silently dropped.
func mergeEntries(rffEntries []models.ScheduleEntry, duties []models.DutyAssignment) []models.ScheduleEntry {
	bySlot := make(map[string]models.ScheduleEntry)
	var unmatched []models.ScheduleEntry

	place := func(entry models.ScheduleEntry, outranks bool) {
		slot, ok := canonicalSlot(entry.Time)
		if !ok {
			unmatched = append(unmatched, entry)
			return
		}
		if existing, taken := bySlot[slot]; taken {
			if !outranks || existing.Type != models.EntryDuty {
				return
			}
		}
		bySlot[slot] = entry
	}

	for _, duty := range duties {
		place(models.ScheduleEntry{
			ID:          duty.ID,
			Time:        duty.TimeSlot,
			Type:        models.EntryDuty,
			Description: duty.Description,
			Location:    duty.Location,
		}, false)
	}
	for _, entry := range rffEntries {
		place(entry, true)
	}

	var merged []models.ScheduleEntry
	for _, slot := range models.DaySlots() {
		if entry, ok := bySlot[slot]; ok {
			merged = append(merged, entry)
		}
	}
	return append(merged, unmatched...)
}

// canonicalSlot maps an entry time to the bell-schedule slot sharing its
// start time.
func canonicalSlot(timeRange string) (string, bool) {
	start := slotStart(timeRange)
	if start == "" {
		return "", false
	}
	for _, slot := range models.DaySlots() {
		if slotStart(slot) == start {
			return slot, true
		}
	}
	return "", false
}

func slotStart(timeRange string) string {
	s := strings.TrimSpace(timeRange)
	if i := strings.Index(s, "-"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	// Bare hours in roster cells lack the leading zero convention, so
	// "9:05" and "09:05" must collide.
	return strings.TrimPrefix(s, "0")
}

func isWeekday(day string) bool {
	for _, d := range models.SchoolDays {
		if d == day {
			return true
		}
	}
	return false
}
