package roster

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hpsapps/daily/internal/models"
)

// Required worksheet names in the roster workbook.
const (
	sheetSummary    = "Summary"
	sheetAllDays    = "ALL DAYS"
	sheetDutyRoster = "Duty Roster"
)

var (
	timeRangePattern = regexp.MustCompile(`^\d{1,2}[:.]\d{2}-\d{1,2}[:.]\d{2}$`)
	amPmPattern      = regexp.MustCompile(`(?i)\s*(am|pm)`)
)

// ImportResult carries the parsed roster tables plus warnings collected
// while resolving grid short names against the teacher directory.
type ImportResult struct {
	Teachers  []models.Teacher
	DutySlots []models.DutySlot
	RFFRoster []models.RFFRosterEntry
	Warnings  []string
}

// ParseWorkbook reads the school roster workbook. All three sheets must be
// present; a missing sheet aborts the import with no partial result.
func ParseWorkbook(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	summaryRows, err := sheetRows(f, sheetSummary)
	if err != nil {
		return nil, err
	}
	allDaysRows, err := sheetRows(f, sheetAllDays)
	if err != nil {
		return nil, err
	}
	dutyRows, err := sheetRows(f, sheetDutyRoster)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	result.Teachers = parseSummary(summaryRows)

	directory := newNameIndex(result.Teachers)
	result.DutySlots = parseDutyRoster(dutyRows, directory, result)
	result.RFFRoster = parseRFFGrid(allDaysRows, directory, result)

	return result, nil
}

func sheetRows(f *excelize.File, name string) ([][]string, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("required sheets (Summary, ALL DAYS, Duty Roster) are missing from the workbook: %q not found", name)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}

// parseSummary reads the teacher directory: column A name, column B class,
// column C class type ("RFF" marks a specialist).
func parseSummary(rows [][]string) []models.Teacher {
	seen := make(map[string]struct{})
	var teachers []models.Teacher

	for i, row := range rows {
		if i == 0 {
			continue
		}
		name := strings.TrimSpace(cell(row, 0))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		teacher := models.Teacher{ID: name, Name: name}
		if className := strings.TrimSpace(cell(row, 1)); className != "" {
			teacher.ClassName = &className
		}
		switch strings.TrimSpace(cell(row, 2)) {
		case "RFF":
			role := models.RoleRFFSpecialist
			teacher.Role = &role
		case "General Class":
			role := models.RoleClassroom
			teacher.Role = &role
		}
		teachers = append(teachers, teacher)
	}
	return teachers
}

// parseDutyRoster fans each duty row out across the weekday columns. Cells
// holding "CLOSED" or team placeholders are skipped; shared duties written
// as "Name/Name" produce one slot per teacher.
func parseDutyRoster(rows [][]string, directory *nameIndex, result *ImportResult) []models.DutySlot {
	if len(rows) == 0 {
		return nil
	}

	headers := make(map[string]int)
	for col, value := range rows[0] {
		if v := strings.TrimSpace(value); v != "" {
			headers[v] = col
		}
	}

	var slots []models.DutySlot
	for i, row := range rows {
		if i == 0 {
			continue
		}
		dutyType := strings.TrimSpace(cellAt(row, headers, "Duty"))
		timeSlot := strings.TrimSpace(cellAt(row, headers, "Time"))
		area := strings.TrimSpace(cellAt(row, headers, "Area"))
		if dutyType == "" || timeSlot == "" || area == "" {
			continue
		}
		normalized := normalizeTimeRange(timeSlot)

		for _, day := range models.SchoolDays {
			assigned := strings.TrimSpace(cellAt(row, headers, day))
			if assigned == "" || assigned == "CLOSED" || strings.Contains(assigned, "Team") {
				continue
			}
			for _, name := range strings.Split(assigned, "/") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				teacherID := directory.resolve(name, result)
				slots = append(slots, models.DutySlot{
					ID:        models.DutySlotID(day, normalized, area, name),
					TeacherID: teacherID,
					Day:       day,
					TimeSlot:  normalized,
					Area:      area,
					When:      dutyType,
				})
			}
		}
	}
	return slots
}

// parseRFFGrid walks the ALL DAYS sheet: a weekday header row opens a day
// block, the following "RFF Teacher" and "RFF Class" rows label the columns,
// and each time-range row contributes one entry per populated column.
func parseRFFGrid(rows [][]string, directory *nameIndex, result *ImportResult) []models.RFFRosterEntry {
	var roster []models.RFFRosterEntry

	currentDay := ""
	var gridTeachers []string
	var gridSubjects []string

	for _, row := range rows {
		first := strings.TrimSpace(cell(row, 0))

		if isSchoolDay(first) {
			currentDay = first
			gridTeachers = nil
			gridSubjects = nil
			continue
		}
		if currentDay == "" {
			continue
		}

		switch {
		case first == "RFF Teacher":
			gridTeachers = labelColumns(row)
		case first == "RFF Class":
			gridSubjects = labelColumns(row)
		case timeRangePattern.MatchString(first):
			timeRange := strings.ReplaceAll(first, ".", ":")
			for col := 1; col < len(row); col++ {
				class := strings.TrimSpace(row[col])
				if class == "" || col-1 >= len(gridTeachers) || col-1 >= len(gridSubjects) {
					continue
				}
				teacher := gridTeachers[col-1]
				subject := gridSubjects[col-1]
				if teacher == "" || subject == "" {
					continue
				}
				roster = append(roster, models.RFFRosterEntry{
					ID:        models.RFFEntryID(currentDay, timeRange, teacher, class),
					Day:       currentDay,
					Time:      timeRange,
					Teacher:   teacher,
					TeacherID: directory.resolveShort(teacher, result),
					Subject:   subject,
					Class:     class,
				})
			}
		}
	}
	return roster
}

// nameIndex resolves roster cell names (full or short) to directory ids.
// The grid's first-name-only convention collides when two teachers share a
// first name, so ambiguous resolutions are reported instead of guessed.
type nameIndex struct {
	byFull  map[string]string
	byShort map[string][]string
	warned  map[string]struct{}
}

func newNameIndex(teachers []models.Teacher) *nameIndex {
	idx := &nameIndex{
		byFull:  make(map[string]string, len(teachers)),
		byShort: make(map[string][]string),
		warned:  make(map[string]struct{}),
	}
	for _, t := range teachers {
		idx.byFull[t.Name] = t.ID
		short := t.ShortName()
		if short != "" {
			idx.byShort[short] = append(idx.byShort[short], t.ID)
		}
	}
	return idx
}

func (idx *nameIndex) resolve(name string, result *ImportResult) string {
	if id, ok := idx.byFull[name]; ok {
		return id
	}
	return idx.resolveShort(name, result)
}

func (idx *nameIndex) resolveShort(short string, result *ImportResult) string {
	ids := idx.byShort[short]
	switch len(ids) {
	case 1:
		return ids[0]
	case 0:
		idx.warnOnce(result, fmt.Sprintf("teacher %q does not match any directory entry", short))
	default:
		idx.warnOnce(result, fmt.Sprintf("short name %q is ambiguous: matches %s", short, strings.Join(ids, ", ")))
	}
	return ""
}

func (idx *nameIndex) warnOnce(result *ImportResult, message string) {
	if _, done := idx.warned[message]; done {
		return
	}
	idx.warned[message] = struct{}{}
	result.Warnings = append(result.Warnings, message)
}

func isSchoolDay(value string) bool {
	for _, day := range models.SchoolDays {
		if value == day {
			return true
		}
	}
	return false
}

func labelColumns(row []string) []string {
	var labels []string
	for col := 1; col < len(row); col++ {
		labels = append(labels, strings.TrimSpace(row[col]))
	}
	return labels
}

// normalizeTimeRange converts "1.05 - 1.25 pm" style cells to "1:05-1:25".
func normalizeTimeRange(raw string) string {
	s := strings.ReplaceAll(raw, ".", ":")
	s = amPmPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " - ", "-")
	return strings.TrimSpace(s)
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func cellAt(row []string, headers map[string]int, name string) string {
	col, ok := headers[name]
	if !ok {
		return ""
	}
	return cell(row, col)
}
