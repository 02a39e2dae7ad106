package models

// Assignment kinds distinguishing template-derived duties from one-off
// additions entered by the operator.
const (
	DutyInherited = "inherited"
	DutyManual    = "manual"
)

// DutyAssignment is a concrete duty occurrence on the derived schedule.
// Manual assignments exist only for the exact calendar date they target;
// inherited ones are instantiated from a DutySlot template.
type DutyAssignment struct {
	ID          string `json:"id"`
	TimeSlot    string `json:"time_slot"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	When        string `json:"when"`
	Description string `json:"description"`
	TeacherID   string `json:"teacher_id,omitempty"`
	Date        string `json:"date,omitempty"`
}

// OriginalDutyRef identifies the duty template occurrence an override was
// applied on top of. Matching is by DutyID only: an edit to a recurring duty
// applies to every occurrence of that slot. Date is retained for display and
// audit, not for matching.
type OriginalDutyRef struct {
	DutyID    string `json:"duty_id"`
	TimeSlot  string `json:"time_slot"`
	TeacherID string `json:"teacher_id"`
	Date      string `json:"date"`
}

// ModifiedInheritedDuty pairs a duty template occurrence with its
// operator-edited replacement. A second edit to the same DutyID replaces the
// pairing; reset removes it, reverting to the template entry. The pairing is
// inert once its DutyID no longer resolves to a live template.
type ModifiedInheritedDuty struct {
	Original OriginalDutyRef `json:"original"`
	Updated  DutyAssignment  `json:"updated"`
}

// OriginalRFFRef identifies the RFF grid entry an override replaces, by the
// entry's schedule-entry id.
type OriginalRFFRef struct {
	ID string `json:"id"`
}

// ModifiedRFF pairs an RFF grid entry with its operator-edited replacement.
// Same replace/reset semantics as ModifiedInheritedDuty.
type ModifiedRFF struct {
	Original OriginalRFFRef `json:"original"`
	Updated  ScheduleEntry  `json:"updated"`
}
