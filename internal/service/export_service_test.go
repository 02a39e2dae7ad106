package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpsapps/daily/internal/state"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

func newTestExportService(t *testing.T) *ExportService {
	t.Helper()
	return NewExportService(newTestScheduleService(loadedStore(t)), nil)
}

func TestCoverSheetText(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.CoverSheet(context.Background(), "Alice Smith", "2025-02-03", "Jane Casual", FormatText)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", file.ContentType)
	assert.Equal(t, "cover-sheet-alice-smith-2025-02-03.txt", file.Filename)

	text := string(file.Content)
	assert.Contains(t, text, "Absent Teacher: Alice Smith")
	assert.Contains(t, text, "Casual Teacher: Jane Casual")
	assert.Contains(t, text, "Date: Monday, 3 February 2025")
	assert.Contains(t, text, "Duties to Cover:")
	assert.Contains(t, text, "- 11:10-11:35: Playground")
	assert.Contains(t, text, "RFF Locations:")
	assert.Contains(t, text, "- 9:05-9:45: Library at 3A")
}

func TestCoverSheetTextWithoutCasual(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.CoverSheet(context.Background(), "Alice Smith", "2025-02-03", "", "")
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), "Casual Teacher: N/A")
}

func TestCoverSheetNonInstructionalDay(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.CoverSheet(context.Background(), "Alice Smith", "2025-04-14", "", FormatText)
	require.NoError(t, err)
	text := string(file.Content)
	assert.Contains(t, text, "Non-instructional day")
	assert.NotContains(t, text, "Duties to Cover:")
}

func TestCoverSheetCSV(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.CoverSheet(context.Background(), "Alice Smith", "2025-02-03", "", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Time,Session,Type,Description,Location", lines[0])
	assert.Contains(t, lines[1], "9:05-9:45")
	assert.Contains(t, lines[1], "Session 1")
}

func TestCoverSheetPDF(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.CoverSheet(context.Background(), "Alice Smith", "2025-02-03", "Jane Casual", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestCoverSheetUnknownFormat(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.CoverSheet(context.Background(), "Alice Smith", "2025-02-03", "", "docx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCoverSheetPropagatesDeriveErrors(t *testing.T) {
	svc := NewExportService(newTestScheduleService(state.New(nil, nil)), nil)

	_, err := svc.CoverSheet(context.Background(), "Alice Smith", "2025-02-03", "", FormatText)
	assert.Equal(t, appErrors.ErrRosterNotLoaded, err)
}
