package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
)

// ParticipationHandler は参加のエンドポイントを扱う
type ParticipationHandler struct {
	participationService ParticipationServiceInterface
}

func NewParticipationHandler(participationService ParticipationServiceInterface) *ParticipationHandler {
	return &ParticipationHandler{participationService: participationService}
}

type AddParticipationRequest struct {
	Participant UserRef `json:"participant" validate:"required"`
	Status      string  `json:"status" validate:"required" example:"accepted"`
}

// Add godoc
// @Summary 参加を追加
// @Description イベントに参加を追加します。参加者ごとに最大1件です
// @Tags participations
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body AddParticipationRequest true "参加情報"
// @Success 201 {object} ParticipationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /events/{id}/participations [post]
func (h *ParticipationHandler) Add(c echo.Context) error {
	var req AddParticipationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	participant, err := req.Participant.toDomain()
	if err != nil {
		return domainError(err)
	}
	status, err := participation.ParseStatus(req.Status)
	if err != nil {
		return domainError(err)
	}

	p, err := h.participationService.AddParticipation(c.Request().Context(), c.Param("id"), participant, status)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toParticipationResponse(p))
}

type SetParticipationRequest struct {
	Status string `json:"status" validate:"required" example:"in_doubt"`
}

// Set godoc
// @Summary 参加状態を変更
// @Tags participations
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param participantId path string true "参加者ID"
// @Param request body SetParticipationRequest true "新しい状態"
// @Success 200 {object} ParticipationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/participations/{participantId} [put]
func (h *ParticipationHandler) Set(c echo.Context) error {
	var req SetParticipationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := participation.ParseStatus(req.Status)
	if err != nil {
		return domainError(err)
	}

	p, err := h.participationService.SetParticipation(c.Request().Context(), c.Param("id"), c.Param("participantId"), status)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toParticipationResponse(p))
}

// Remove godoc
// @Summary 参加を削除
// @Tags participations
// @Param id path string true "イベントID"
// @Param participantId path string true "参加者ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /events/{id}/participations/{participantId} [delete]
func (h *ParticipationHandler) Remove(c echo.Context) error {
	if err := h.participationService.RemoveParticipation(c.Request().Context(), c.Param("id"), c.Param("participantId")); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
