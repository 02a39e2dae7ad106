package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpsapps/daily/internal/state"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

func TestCasualCreateListSorted(t *testing.T) {
	svc := NewCasualService(state.New(nil, nil), nil)

	_, err := svc.Create("Zoe Adams", nil, nil)
	require.NoError(t, err)
	_, err = svc.Create("Amy Brown", nil, nil)
	require.NoError(t, err)

	casuals := svc.List()
	require.Len(t, casuals, 2)
	assert.Equal(t, "Amy Brown", casuals[0].Name)
	assert.Equal(t, "Zoe Adams", casuals[1].Name)
}

func TestCasualCreateRejectsDuplicateName(t *testing.T) {
	svc := NewCasualService(state.New(nil, nil), nil)

	_, err := svc.Create("Jane Casual", nil, nil)
	require.NoError(t, err)

	_, err = svc.Create("jane casual", nil, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCasualCreateRequiresName(t *testing.T) {
	svc := NewCasualService(state.New(nil, nil), nil)

	_, err := svc.Create("   ", nil, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCasualUpdateAndDelete(t *testing.T) {
	svc := NewCasualService(state.New(nil, nil), nil)

	created, err := svc.Create("Jane Casual", nil, nil)
	require.NoError(t, err)

	email := "jane@relief.example"
	updated, err := svc.Update(created.ID, "Jane C. Casual", &email, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane C. Casual", updated.Name)
	require.NotNil(t, updated.Email)

	require.NoError(t, svc.Delete(created.ID))
	assert.Empty(t, svc.List())

	err = svc.Delete(created.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
