package models

import "time"

// DayType classifies a calendar date against the school calendar.
type DayType string

const (
	DayTypeTerm        DayType = "term"
	DayTypeHoliday     DayType = "holiday"
	DayTypeDevelopment DayType = "development"
)

// TermInfo is the result of resolving a calendar date against the term table.
type TermInfo struct {
	Type        DayType `json:"type"`
	Term        int     `json:"term,omitempty"`
	Week        int     `json:"week,omitempty"`
	Description string  `json:"description"`
}

// TermPeriod is one non-overlapping date range in the static school calendar
// table. Ranges are inclusive on both ends.
type TermPeriod struct {
	Start       time.Time
	End         time.Time
	Type        DayType
	Term        int
	Week        int
	Description string
}

// Contains reports whether the date falls inside the period, comparing by
// calendar day.
func (p TermPeriod) Contains(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	return !day.Before(p.Start) && !day.After(p.End)
}
