package service

import (
	"fmt"
	"time"

	"github.com/hpsapps/daily/internal/models"
)

// unknownBreak is returned for dates outside every listed period. Not an
// error: dates beyond the published calendar are treated as breaks.
const unknownBreak = "Unknown Holiday/Break"

// TermService resolves calendar dates against the static school calendar.
type TermService struct {
	periods []models.TermPeriod
}

// NewTermService constructs a TermService over the published calendar table.
func NewTermService() *TermService {
	return &TermService{periods: termPeriods}
}

// Resolve maps a date to its term/week/day-type. The first containing range
// wins; the ranges are non-overlapping by construction.
func (s *TermService) Resolve(date time.Time) models.TermInfo {
	for _, p := range s.periods {
		if p.Contains(date) {
			info := models.TermInfo{Type: p.Type, Description: p.Description}
			if p.Type == models.DayTypeTerm {
				info.Term = p.Term
				info.Week = p.Week
			}
			return info
		}
	}
	return models.TermInfo{Type: models.DayTypeHoliday, Description: unknownBreak}
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func termWeek(term, week int, start, end time.Time, length string) models.TermPeriod {
	return models.TermPeriod{
		Start: start, End: end,
		Type: models.DayTypeTerm, Term: term, Week: week,
		Description: termWeekDescription(term, week, length),
	}
}

func termWeekDescription(term, week int, length string) string {
	return fmt.Sprintf("Term %d Week %d (%s)", term, week, length)
}

// 2025 calendar (NSW Eastern division). Week 1 of Term 1 is the development
// day on 31 January.
var termPeriods = []models.TermPeriod{
	{Start: day(2025, 1, 31), End: day(2025, 1, 31), Type: models.DayTypeDevelopment, Description: "School development day (Eastern division)"},
	termWeek(1, 2, day(2025, 2, 3), day(2025, 2, 7), "11 Wk Term"),
	termWeek(1, 3, day(2025, 2, 10), day(2025, 2, 14), "11 Wk Term"),
	termWeek(1, 4, day(2025, 2, 17), day(2025, 2, 21), "11 Wk Term"),
	termWeek(1, 5, day(2025, 2, 24), day(2025, 2, 28), "11 Wk Term"),
	termWeek(1, 6, day(2025, 3, 3), day(2025, 3, 7), "11 Wk Term"),
	termWeek(1, 7, day(2025, 3, 10), day(2025, 3, 14), "11 Wk Term"),
	termWeek(1, 8, day(2025, 3, 17), day(2025, 3, 21), "11 Wk Term"),
	termWeek(1, 9, day(2025, 3, 24), day(2025, 3, 28), "11 Wk Term"),
	termWeek(1, 10, day(2025, 3, 31), day(2025, 4, 4), "11 Wk Term"),
	termWeek(1, 11, day(2025, 4, 7), day(2025, 4, 11), "11 Wk Term"),
	{Start: day(2025, 4, 14), End: day(2025, 4, 24), Type: models.DayTypeHoliday, Description: "School Holidays"},

	{Start: day(2025, 4, 28), End: day(2025, 4, 29), Type: models.DayTypeDevelopment, Description: "School development day"},
	termWeek(2, 1, day(2025, 4, 30), day(2025, 5, 2), "10 Wk Term"),
	termWeek(2, 2, day(2025, 5, 5), day(2025, 5, 9), "10 Wk Term"),
	termWeek(2, 3, day(2025, 5, 12), day(2025, 5, 16), "10 Wk Term"),
	termWeek(2, 4, day(2025, 5, 19), day(2025, 5, 23), "10 Wk Term"),
	termWeek(2, 5, day(2025, 5, 26), day(2025, 5, 30), "10 Wk Term"),
	termWeek(2, 6, day(2025, 6, 2), day(2025, 6, 6), "10 Wk Term"),
	termWeek(2, 7, day(2025, 6, 9), day(2025, 6, 13), "10 Wk Term"),
	termWeek(2, 8, day(2025, 6, 16), day(2025, 6, 20), "10 Wk Term"),
	termWeek(2, 9, day(2025, 6, 23), day(2025, 6, 27), "10 Wk Term"),
	termWeek(2, 10, day(2025, 6, 30), day(2025, 7, 4), "10 Wk Term"),
	{Start: day(2025, 7, 7), End: day(2025, 7, 18), Type: models.DayTypeHoliday, Description: "School Holidays"},

	{Start: day(2025, 7, 21), End: day(2025, 7, 21), Type: models.DayTypeDevelopment, Description: "School development day"},
	termWeek(3, 1, day(2025, 7, 22), day(2025, 7, 25), "10 Wk Term"),
	termWeek(3, 2, day(2025, 7, 28), day(2025, 8, 1), "10 Wk Term"),
	termWeek(3, 3, day(2025, 8, 4), day(2025, 8, 8), "10 Wk Term"),
	termWeek(3, 4, day(2025, 8, 11), day(2025, 8, 15), "10 Wk Term"),
	termWeek(3, 5, day(2025, 8, 18), day(2025, 8, 22), "10 Wk Term"),
	termWeek(3, 6, day(2025, 8, 25), day(2025, 8, 29), "10 Wk Term"),
	termWeek(3, 7, day(2025, 9, 1), day(2025, 9, 5), "10 Wk Term"),
	termWeek(3, 8, day(2025, 9, 8), day(2025, 9, 12), "10 Wk Term"),
	termWeek(3, 9, day(2025, 9, 15), day(2025, 9, 19), "10 Wk Term"),
	termWeek(3, 10, day(2025, 9, 22), day(2025, 9, 26), "10 Wk Term"),
	{Start: day(2025, 9, 29), End: day(2025, 10, 10), Type: models.DayTypeHoliday, Description: "School Holidays"},

	{Start: day(2025, 10, 13), End: day(2025, 10, 13), Type: models.DayTypeDevelopment, Description: "School development day"},
	termWeek(4, 1, day(2025, 10, 14), day(2025, 10, 17), "10 Wk Term"),
	termWeek(4, 2, day(2025, 10, 20), day(2025, 10, 24), "10 Wk Term"),
	termWeek(4, 3, day(2025, 10, 27), day(2025, 10, 31), "10 Wk Term"),
	termWeek(4, 4, day(2025, 11, 3), day(2025, 11, 7), "10 Wk Term"),
	termWeek(4, 5, day(2025, 11, 10), day(2025, 11, 14), "10 Wk Term"),
	termWeek(4, 6, day(2025, 11, 17), day(2025, 11, 21), "10 Wk Term"),
	termWeek(4, 7, day(2025, 11, 24), day(2025, 11, 28), "10 Wk Term"),
	termWeek(4, 8, day(2025, 12, 1), day(2025, 12, 5), "10 Wk Term"),
	termWeek(4, 9, day(2025, 12, 8), day(2025, 12, 12), "10 Wk Term"),
	termWeek(4, 10, day(2025, 12, 15), day(2025, 12, 19), "10 Wk Term"),
	{Start: day(2025, 12, 22), End: day(2026, 1, 26), Type: models.DayTypeHoliday, Description: "School Holidays (Eastern division)"},
}
