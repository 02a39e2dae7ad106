package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpsapps/daily/internal/service"
	"github.com/hpsapps/daily/internal/state"
	"github.com/hpsapps/daily/pkg/response"
)

func newCasualHandlerTest() (*CasualHandler, *service.CasualService) {
	svc := service.NewCasualService(state.New(nil, nil), nil)
	return NewCasualHandler(svc), svc
}

func TestCasualHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, svc := newCasualHandlerTest()

	payload, _ := json.Marshal(CasualRequest{Name: "Jane Casual"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/casuals", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.List(), 1)
}

func TestCasualHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newCasualHandlerTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/casuals", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestCasualHandlerDeleteMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newCasualHandlerTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/casuals/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Delete(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCasualHandlerDuplicateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, svc := newCasualHandlerTest()
	_, err := svc.Create("Jane Casual", nil, nil)
	require.NoError(t, err)

	payload, _ := json.Marshal(CasualRequest{Name: "Jane Casual"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/casuals", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
}
