package models

import "strings"

// Teacher roles sourced from the Summary sheet of the roster workbook.
const (
	RoleClassroom     = "Classroom"
	RoleRFFSpecialist = "RFF Specialist"
)

// Teacher represents one staff member from the roster directory.
// Records are created at import time and replaced wholesale on re-import.
type Teacher struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ClassName *string `json:"class_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ShortName returns the first token of the teacher's full name. The RFF grid
// refers to teachers by this token only, which is why import-time resolution
// records collisions as warnings instead of guessing.
func (t Teacher) ShortName() string {
	fields := strings.Fields(t.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsRFFSpecialist reports whether the teacher delivers RFF sessions rather
// than owning a class.
func (t Teacher) IsRFFSpecialist() bool {
	return t.Role != nil && *t.Role == RoleRFFSpecialist
}

// Class returns the teacher's class name or the empty string.
func (t Teacher) Class() string {
	if t.ClassName == nil {
		return ""
	}
	return *t.ClassName
}

// TeacherFilter captures search options for listing teachers.
type TeacherFilter struct {
	Search   string
	Page     int
	PageSize int
}
