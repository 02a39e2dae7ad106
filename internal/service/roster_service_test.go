package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpsapps/daily/internal/models"
	"github.com/hpsapps/daily/internal/state"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

func TestListTeachersRequiresRoster(t *testing.T) {
	svc := NewRosterService(state.New(nil, nil), nil)

	_, _, err := svc.ListTeachers(models.TeacherFilter{})
	assert.Equal(t, appErrors.ErrRosterNotLoaded, err)

	_, err = svc.GetTeacher("Alice Smith")
	assert.Equal(t, appErrors.ErrRosterNotLoaded, err)
}

func TestListTeachersSearchAndPaging(t *testing.T) {
	svc := NewRosterService(loadedStore(t), nil)

	all, pagination, err := svc.ListTeachers(models.TeacherFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)

	byName, _, err := svc.ListTeachers(models.TeacherFilter{Search: "alice"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Alice Smith", byName[0].Name)

	byClass, _, err := svc.ListTeachers(models.TeacherFilter{Search: "3a"})
	require.NoError(t, err)
	require.Len(t, byClass, 1)

	paged, pagination, err := svc.ListTeachers(models.TeacherFilter{Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, 2, pagination.TotalCount)

	beyond, _, err := svc.ListTeachers(models.TeacherFilter{Page: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestGetTeacher(t *testing.T) {
	svc := NewRosterService(loadedStore(t), nil)

	teacher, err := svc.GetTeacher("Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, "3A", teacher.Class())

	_, err = svc.GetTeacher("Nobody")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterStatusCounts(t *testing.T) {
	svc := NewRosterService(loadedStore(t), nil)

	status := svc.Status()
	assert.Equal(t, true, status["roster_loaded"])
	assert.Equal(t, 2, status["teachers"])
	assert.Equal(t, 2, status["duty_slots"])
	assert.Equal(t, 3, status["rff_rows"])
}
