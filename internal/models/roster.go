package models

import "fmt"

// Weekdays covered by the roster templates. Weekend days never carry
// template entries.
var SchoolDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DutySlot is a recurring weekly supervision obligation from the Duty Roster
// sheet. Immutable after import; one schedule entry is instantiated per
// matching (teacher, weekday).
type DutySlot struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacher_id"`
	Day       string `json:"day"`
	TimeSlot  string `json:"time_slot"`
	Area      string `json:"area"`
	When      string `json:"when"`
}

// DutySlotID builds the deterministic identity used for duty templates so
// that overrides keyed on it survive a re-import of identical data.
func DutySlotID(day, timeSlot, area, teacher string) string {
	return fmt.Sprintf("%s-%s-%s-%s", day, timeSlot, area, teacher)
}

// RFFRosterEntry is one cell of the master weekly RFF grid (ALL DAYS sheet).
// Teacher holds the short name printed in the grid; TeacherID is filled at
// import when the short name resolves to exactly one directory entry.
type RFFRosterEntry struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Teacher   string `json:"teacher"`
	TeacherID string `json:"teacher_id,omitempty"`
	Subject   string `json:"subject"`
	Class     string `json:"class"`
}

// RFFEntryID builds the deterministic identity for an RFF grid cell; RFF
// overrides are keyed on it.
func RFFEntryID(day, timeRange, teacher, class string) string {
	return fmt.Sprintf("%s-%s-%s-%s", day, timeRange, teacher, class)
}
