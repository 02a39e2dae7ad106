package models

// EntryType classifies a derived schedule entry.
type EntryType string

const (
	EntryRFF         EntryType = "RFF"
	EntryClass       EntryType = "Class"
	EntryDuty        EntryType = "Duty"
	EntryExecRelease EntryType = "Exec Release"
	EntryNA          EntryType = "N/A"
)

// ScheduleEntry is one derived timetable row. Entries are ephemeral: they are
// recomputed on every derivation pass and never persisted.
type ScheduleEntry struct {
	ID          string    `json:"id"`
	Time        string    `json:"time"`
	Type        EntryType `json:"type"`
	Description string    `json:"description"`
	Class       string    `json:"class,omitempty"`
	Location    string    `json:"location,omitempty"`
	TeacherName string    `json:"teacher_name,omitempty"`
}

// Schedule is the derived daily cover sheet for one (teacher, date) pair.
// Duties and RFFSlots carry the raw merged inputs for the export consumer.
type Schedule struct {
	Teacher          Teacher          `json:"teacher"`
	Date             string           `json:"date"`
	Day              string           `json:"day"`
	FormattedDate    string           `json:"formatted_date"`
	TermInfo         TermInfo         `json:"term_info"`
	NonInstructional bool             `json:"non_instructional"`
	DailySchedule    []ScheduleEntry  `json:"daily_schedule"`
	Duties           []DutyAssignment `json:"duties"`
	RFFSlots         []RFFRosterEntry `json:"rff_slots"`
	AssignedCasual   string           `json:"assigned_casual,omitempty"`
}
