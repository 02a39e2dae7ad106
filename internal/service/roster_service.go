package service

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/hpsapps/daily/internal/models"
	"github.com/hpsapps/daily/internal/roster"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

// RosterStateWriter is the slice of the state store the import flow and the
// teacher directory consume.
type RosterStateWriter interface {
	RosterLoaded() bool
	Teachers() []models.Teacher
	TeacherByID(id string) (*models.Teacher, bool)
	LoadRoster(teachers []models.Teacher, dutySlots []models.DutySlot, rffRoster []models.RFFRosterEntry)
	Snapshot() models.AppState
}

// ImportSummary reports what a workbook import produced.
type ImportSummary struct {
	Teachers  int      `json:"teachers"`
	DutySlots int      `json:"duty_slots"`
	RFFRows   int      `json:"rff_rows"`
	Warnings  []string `json:"warnings,omitempty"`
}

// RosterService imports the roster workbook and serves the teacher directory.
type RosterService struct {
	state  RosterStateWriter
	logger *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(state RosterStateWriter, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{state: state, logger: logger}
}

// Import parses the uploaded workbook and replaces the roster tables
// wholesale. Overrides recorded against the previous roster are kept; any
// whose original no longer resolves simply stop applying.
func (s *RosterService) Import(r io.Reader) (*ImportSummary, error) {
	result, err := roster.ParseWorkbook(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "workbook could not be parsed")
	}
	if len(result.Teachers) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "workbook contains no teachers in the Summary sheet")
	}

	s.state.LoadRoster(result.Teachers, result.DutySlots, result.RFFRoster)
	s.logger.Info("roster imported",
		zap.Int("teachers", len(result.Teachers)),
		zap.Int("duty_slots", len(result.DutySlots)),
		zap.Int("rff_rows", len(result.RFFRoster)),
		zap.Int("warnings", len(result.Warnings)),
	)

	return &ImportSummary{
		Teachers:  len(result.Teachers),
		DutySlots: len(result.DutySlots),
		RFFRows:   len(result.RFFRoster),
		Warnings:  result.Warnings,
	}, nil
}

// ListTeachers returns the directory filtered by a case-insensitive name or
// class search, paginated.
func (s *RosterService) ListTeachers(filter models.TeacherFilter) ([]models.Teacher, models.Pagination, error) {
	if !s.state.RosterLoaded() {
		return nil, models.Pagination{}, appErrors.ErrRosterNotLoaded
	}

	all := s.state.Teachers()
	var matched []models.Teacher
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, t := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Class()), needle) {
			matched = append(matched, t)
		}
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	pagination := models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}

	start := (page - 1) * size
	if start >= len(matched) {
		return []models.Teacher{}, pagination, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination, nil
}

// GetTeacher looks one teacher up by id.
func (s *RosterService) GetTeacher(id string) (*models.Teacher, error) {
	if !s.state.RosterLoaded() {
		return nil, appErrors.ErrRosterNotLoaded
	}
	teacher, ok := s.state.TeacherByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return teacher, nil
}

// Status summarises the loaded roster for the readiness and status endpoints.
func (s *RosterService) Status() map[string]interface{} {
	snapshot := s.state.Snapshot()
	return map[string]interface{}{
		"roster_loaded":    snapshot.RosterLoaded,
		"teachers":         len(snapshot.Teachers),
		"duty_slots":       len(snapshot.DutySlots),
		"rff_rows":         len(snapshot.RFFRoster),
		"manual_duties":    len(snapshot.ManualDuties),
		"overrides":        len(snapshot.ModifiedInheritedDuties) + len(snapshot.ModifiedRFFs),
		"casuals":          len(snapshot.Casuals),
		"last_data_update": snapshot.LastDataUpdate,
	}
}
