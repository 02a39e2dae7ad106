package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hpsapps/daily/internal/models"
	appErrors "github.com/hpsapps/daily/pkg/errors"
	"github.com/hpsapps/daily/pkg/export"
)

// Export formats supported by the cover-sheet endpoint.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// ScheduleDeriver produces the derived schedule the exporters consume.
type ScheduleDeriver interface {
	Derive(ctx context.Context, teacherID, date string) (*models.Schedule, error)
}

// ExportFile is a rendered cover sheet plus the metadata the handler needs
// to serve it as a download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the daily cover sheet handed to the casual teacher.
type ExportService struct {
	schedules ScheduleDeriver
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedules ScheduleDeriver, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedules: schedules,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// CoverSheet derives the schedule and renders it in the requested format.
// casual is the name of the relief teacher the sheet is addressed to; it may
// be empty.
func (s *ExportService) CoverSheet(ctx context.Context, teacherID, date, casual, format string) (*ExportFile, error) {
	schedule, err := s.schedules.Derive(ctx, teacherID, date)
	if err != nil {
		return nil, err
	}
	schedule.AssignedCasual = casual

	base := fmt.Sprintf("cover-sheet-%s-%s", slug(schedule.Teacher.Name), date)
	switch format {
	case FormatText, "":
		return &ExportFile{
			Content:     []byte(renderText(schedule)),
			ContentType: "text/plain; charset=utf-8",
			Filename:    base + ".txt",
		}, nil
	case FormatCSV:
		content, err := s.csv.Render(scheduleDataset(schedule))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: base + ".csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(scheduleDataset(schedule), "Daily Cover Sheet", summaryLines(schedule))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q, expected text, csv or pdf", format))
	}
}

// renderText produces the plain-text cover sheet used for copy and paste
// into an email or staff messenger.
func renderText(schedule *models.Schedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Absent Teacher: %s\n", schedule.Teacher.Name)
	casual := schedule.AssignedCasual
	if casual == "" {
		casual = "N/A"
	}
	fmt.Fprintf(&b, "Casual Teacher: %s\n", casual)
	fmt.Fprintf(&b, "Date: %s\n", schedule.FormattedDate)

	if schedule.NonInstructional {
		fmt.Fprintf(&b, "\nNon-instructional day: %s\n", schedule.TermInfo.Description)
		return b.String()
	}

	b.WriteString("\nDuties to Cover:\n")
	if len(schedule.Duties) == 0 {
		b.WriteString("- None\n")
	}
	for _, duty := range schedule.Duties {
		fmt.Fprintf(&b, "- %s: %s\n", duty.TimeSlot, duty.Location)
	}

	b.WriteString("\nRFF Locations:\n")
	if len(schedule.RFFSlots) == 0 {
		b.WriteString("- None\n")
	}
	for _, slot := range schedule.RFFSlots {
		location := slot.Class
		if location == "" {
			location = "N/A"
		}
		fmt.Fprintf(&b, "- %s: %s at %s\n", slot.Time, slot.Subject, location)
	}
	return b.String()
}

func scheduleDataset(schedule *models.Schedule) export.Dataset {
	headers := []string{"Time", "Session", "Type", "Description", "Location"}
	rows := make([]map[string]string, 0, len(schedule.DailySchedule))
	for _, entry := range schedule.DailySchedule {
		location := entry.Location
		if location == "" {
			location = entry.Class
		}
		rows = append(rows, map[string]string{
			"Time":        entry.Time,
			"Session":     models.SessionTitle(entry.Time),
			"Type":        string(entry.Type),
			"Description": entry.Description,
			"Location":    location,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func summaryLines(schedule *models.Schedule) []string {
	casual := schedule.AssignedCasual
	if casual == "" {
		casual = "N/A"
	}
	lines := []string{
		"Absent Teacher: " + schedule.Teacher.Name,
		"Casual Teacher: " + casual,
		"Date: " + schedule.FormattedDate,
	}
	if schedule.TermInfo.Description != "" {
		lines = append(lines, schedule.TermInfo.Description)
	}
	return lines
}

func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(s, " ", "-")
}
