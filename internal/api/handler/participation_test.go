package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// MockParticipationService はParticipationServiceInterfaceのモック
type MockParticipationService struct {
	mock.Mock
}

func (m *MockParticipationService) AddParticipation(ctx context.Context, eventID string, participant user.Ref, status participation.Status) (*participation.Participation, error) {
	args := m.Called(ctx, eventID, participant, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*participation.Participation), args.Error(1)
}

func (m *MockParticipationService) SetParticipation(ctx context.Context, eventID, participantID string, status participation.Status) (*participation.Participation, error) {
	args := m.Called(ctx, eventID, participantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*participation.Participation), args.Error(1)
}

func (m *MockParticipationService) RemoveParticipation(ctx context.Context, eventID, participantID string) error {
	args := m.Called(ctx, eventID, participantID)
	return args.Error(0)
}

var testFan = user.Ref{Kind: user.KindParticipant, ID: "fan-1", Name: "佐藤花子"}

func TestParticipationHandler_Add(t *testing.T) {
	e := NewTestEcho()

	t.Run("参加を追加できる", func(t *testing.T) {
		mockService := new(MockParticipationService)
		p := participation.NewParticipation("event-123", testFan, participation.StatusAccepted)

		mockService.On("AddParticipation", mock.Anything, "event-123", testFan, participation.StatusAccepted).
			Return(p, nil)

		handler := NewParticipationHandler(mockService)

		reqBody := `{"participant": {"kind": "participant", "id": "fan-1", "name": "佐藤花子"}, "status": "accepted"}`
		req := httptest.NewRequest(http.MethodPost, "/events/event-123/participations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("event-123")

		err := handler.Add(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ParticipationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "fan-1", resp.Participant.ID)
		assert.Equal(t, "accepted", resp.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("不正な状態でエラー", func(t *testing.T) {
		handler := NewParticipationHandler(new(MockParticipationService))

		reqBody := `{"participant": {"kind": "participant", "id": "fan-1"}, "status": "unknown"}`
		req := httptest.NewRequest(http.MethodPost, "/events/event-123/participations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("event-123")

		err := handler.Add(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("重複参加の場合409", func(t *testing.T) {
		mockService := new(MockParticipationService)
		mockService.On("AddParticipation", mock.Anything, "event-123", testFan, participation.StatusAccepted).
			Return(nil, participation.ErrAlreadyParticipating)

		handler := NewParticipationHandler(mockService)

		reqBody := `{"participant": {"kind": "participant", "id": "fan-1", "name": "佐藤花子"}, "status": "accepted"}`
		req := httptest.NewRequest(http.MethodPost, "/events/event-123/participations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("event-123")

		err := handler.Add(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})
}

func TestParticipationHandler_Set(t *testing.T) {
	e := NewTestEcho()

	mockService := new(MockParticipationService)
	p := participation.NewParticipation("event-123", testFan, participation.StatusInDoubt)
	mockService.On("SetParticipation", mock.Anything, "event-123", "fan-1", participation.StatusInDoubt).
		Return(p, nil)

	handler := NewParticipationHandler(mockService)

	reqBody := `{"status": "in_doubt"}`
	req := httptest.NewRequest(http.MethodPut, "/events/event-123/participations/fan-1", strings.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "participantId")
	c.SetParamValues("event-123", "fan-1")

	err := handler.Set(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ParticipationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "in_doubt", resp.Status)
	mockService.AssertExpectations(t)
}

func TestParticipationHandler_Remove(t *testing.T) {
	e := NewTestEcho()

	t.Run("参加を削除できる", func(t *testing.T) {
		mockService := new(MockParticipationService)
		mockService.On("RemoveParticipation", mock.Anything, "event-123", "fan-1").Return(nil)

		handler := NewParticipationHandler(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/events/event-123/participations/fan-1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "participantId")
		c.SetParamValues("event-123", "fan-1")

		err := handler.Remove(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("参加が見つからない場合404", func(t *testing.T) {
		mockService := new(MockParticipationService)
		mockService.On("RemoveParticipation", mock.Anything, "event-123", "unknown").
			Return(participation.ErrParticipationNotFound)

		handler := NewParticipationHandler(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/events/event-123/participations/unknown", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "participantId")
		c.SetParamValues("event-123", "unknown")

		err := handler.Remove(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}
