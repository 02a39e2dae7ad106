package roster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hpsapps/daily/internal/models"
)

func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()

	setRow := func(sheet string, row int, values ...string) {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	_, err := f.NewSheet(sheetSummary)
	require.NoError(t, err)
	setRow(sheetSummary, 1, "Teacher", "Class", "Class Type")
	setRow(sheetSummary, 2, "Alice Smith", "3A", "General Class")
	setRow(sheetSummary, 3, "Bob Jones", "", "RFF")
	setRow(sheetSummary, 4, "Bob Smith", "", "RFF")
	setRow(sheetSummary, 5, "Carol White", "5B", "General Class")

	_, err = f.NewSheet(sheetDutyRoster)
	require.NoError(t, err)
	setRow(sheetDutyRoster, 1, "Duty", "Time", "Area", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday")
	setRow(sheetDutyRoster, 2, "Recess", "11.10 - 11.35 am", "Playground", "Alice Smith", "CLOSED", "", "Carol White", "")
	setRow(sheetDutyRoster, 3, "First Lunch", "1.05 - 1.25 pm", "Canteen", "Alice Smith/Carol White", "", "", "", "Sport Team")

	_, err = f.NewSheet(sheetAllDays)
	require.NoError(t, err)
	setRow(sheetAllDays, 1, "Monday")
	setRow(sheetAllDays, 2, "RFF Teacher", "Bob", "Carol")
	setRow(sheetAllDays, 3, "RFF Class", "Library", "Music")
	setRow(sheetAllDays, 4, "9.05-9.45", "3A", "")
	setRow(sheetAllDays, 5, "9.45-10.25", "RFF", "5B")

	require.NoError(t, f.DeleteSheet("Sheet1"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	result, err := ParseWorkbook(buildWorkbook(t))
	require.NoError(t, err)

	require.Len(t, result.Teachers, 4)
	alice := result.Teachers[0]
	assert.Equal(t, "Alice Smith", alice.ID)
	assert.Equal(t, "3A", alice.Class())
	assert.False(t, alice.IsRFFSpecialist())
	assert.True(t, result.Teachers[1].IsRFFSpecialist())
}

func TestParseDutyRosterFansOutDays(t *testing.T) {
	result, err := ParseWorkbook(buildWorkbook(t))
	require.NoError(t, err)

	// Row 2: Monday + Thursday; row 3: a shared Monday cell. CLOSED, empty
	// and team placeholder cells contribute nothing.
	require.Len(t, result.DutySlots, 4)

	byDay := map[string][]models.DutySlot{}
	for _, slot := range result.DutySlots {
		byDay[slot.Day] = append(byDay[slot.Day], slot)
	}
	require.Len(t, byDay["Monday"], 3)
	require.Len(t, byDay["Thursday"], 1)

	recess := byDay["Monday"][0]
	assert.Equal(t, "11:10-11:35", recess.TimeSlot)
	assert.Equal(t, "Playground", recess.Area)
	assert.Equal(t, "Recess", recess.When)
	assert.Equal(t, "Alice Smith", recess.TeacherID)

	shared := byDay["Monday"][1:]
	assert.Equal(t, "Alice Smith", shared[0].TeacherID)
	assert.Equal(t, "Carol White", shared[1].TeacherID)
	assert.Equal(t, "1:05-1:25", shared[0].TimeSlot)
}

func TestParseRFFGrid(t *testing.T) {
	result, err := ParseWorkbook(buildWorkbook(t))
	require.NoError(t, err)

	require.Len(t, result.RFFRoster, 3)

	first := result.RFFRoster[0]
	assert.Equal(t, "Monday", first.Day)
	assert.Equal(t, "9:05-9:45", first.Time)
	assert.Equal(t, "Bob", first.Teacher)
	assert.Equal(t, "Library", first.Subject)
	assert.Equal(t, "3A", first.Class)
	// "Bob" is ambiguous between Bob Jones and Bob Smith.
	assert.Empty(t, first.TeacherID)

	var carol models.RFFRosterEntry
	for _, entry := range result.RFFRoster {
		if entry.Teacher == "Carol" {
			carol = entry
		}
	}
	assert.Equal(t, "Carol White", carol.TeacherID)
	assert.Equal(t, "5B", carol.Class)
}

func TestParseWorkbookWarnsOnAmbiguousShortName(t *testing.T) {
	result, err := ParseWorkbook(buildWorkbook(t))
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	joined := strings.Join(result.Warnings, "\n")
	assert.Contains(t, joined, "Bob")
	assert.Contains(t, joined, "ambiguous")

	// The same unresolved name warns once, not once per row.
	count := strings.Count(joined, "ambiguous")
	assert.Equal(t, 1, count)
}

func TestParseWorkbookMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet(sheetSummary)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseWorkbook(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALL DAYS")
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
}
