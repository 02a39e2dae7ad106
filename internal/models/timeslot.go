package models

import "strings"

// SessionSlots groups the canonical time ranges belonging to one named part
// of the school day.
type SessionSlots struct {
	Title string
	Times []string
}

// daySessions is the school's canonical bell schedule. The derivation walks
// DaySlots in this order and emits at most one entry per range.
var daySessions = []SessionSlots{
	{Title: "Before School", Times: []string{"8:35-9:05"}},
	{Title: "Session 1", Times: []string{"9:05-9:45", "9:45-10:25", "10:25-11:10"}},
	{Title: "Recess", Times: []string{"11:10-11:35"}},
	{Title: "Session 2", Times: []string{"11:35-12:15", "12:15-13:05"}},
	{Title: "First Lunch", Times: []string{"13:05-13:25"}},
	{Title: "Second Lunch", Times: []string{"13:25-13:45"}},
	{Title: "Session 3", Times: []string{"13:45-14:25", "14:25-15:05"}},
	{Title: "After School", Times: []string{"15:05-15:25"}},
}

// DaySlots returns the ordered canonical time ranges for an instructional day.
func DaySlots() []string {
	slots := make([]string, 0, 12)
	for _, session := range daySessions {
		slots = append(slots, session.Times...)
	}
	return slots
}

// SessionTitle maps a time range (or its start time) to the session it
// belongs to. Lookup is by start-of-range prefix so "11:10-11:35" and
// "11:10" both resolve to Recess.
func SessionTitle(timeRange string) string {
	start := normalizeSlotStart(timeRange)
	if start == "" {
		return "Unknown Session"
	}
	for _, session := range daySessions {
		for _, t := range session.Times {
			if strings.HasPrefix(normalizeSlotStart(t), start) || strings.HasPrefix(start, normalizeSlotStart(t)) {
				return session.Title
			}
		}
	}
	return "Unknown Session"
}

func normalizeSlotStart(timeRange string) string {
	s := strings.TrimSpace(timeRange)
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
