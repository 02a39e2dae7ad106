package service

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hpsapps/daily/internal/models"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

// CasualStateWriter is the slice of the state store behind the casual
// teacher directory.
type CasualStateWriter interface {
	Casuals() []models.CasualTeacher
	AddCasual(casual models.CasualTeacher)
	UpdateCasual(casual models.CasualTeacher) bool
	DeleteCasual(id string) bool
}

// CasualService manages the directory of casual (relief) teachers.
type CasualService struct {
	state  CasualStateWriter
	logger *zap.Logger
}

// NewCasualService constructs a CasualService.
func NewCasualService(state CasualStateWriter, logger *zap.Logger) *CasualService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CasualService{state: state, logger: logger}
}

// List returns the casual directory sorted by name.
func (s *CasualService) List() []models.CasualTeacher {
	casuals := s.state.Casuals()
	sort.Slice(casuals, func(i, j int) bool {
		return strings.ToLower(casuals[i].Name) < strings.ToLower(casuals[j].Name)
	})
	return casuals
}

// Create adds a casual teacher. Duplicate names are rejected to keep the
// cover-sheet assignment dropdown unambiguous.
func (s *CasualService) Create(name string, email, phone *string) (*models.CasualTeacher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "casual name is required")
	}
	for _, existing := range s.state.Casuals() {
		if strings.EqualFold(existing.Name, name) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a casual with that name already exists")
		}
	}

	casual := models.CasualTeacher{ID: uuid.NewString(), Name: name, Email: email, Phone: phone}
	s.state.AddCasual(casual)
	s.logger.Info("casual added", zap.String("casual_id", casual.ID), zap.String("name", name))
	return &casual, nil
}

// Update replaces a casual record by id.
func (s *CasualService) Update(id, name string, email, phone *string) (*models.CasualTeacher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "casual name is required")
	}
	casual := models.CasualTeacher{ID: id, Name: name, Email: email, Phone: phone}
	if !s.state.UpdateCasual(casual) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "casual not found")
	}
	return &casual, nil
}

// Delete removes a casual record by id.
func (s *CasualService) Delete(id string) error {
	if !s.state.DeleteCasual(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "casual not found")
	}
	return nil
}
