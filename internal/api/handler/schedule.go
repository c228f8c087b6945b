package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Laustrup/go-gig-booking/internal/application"
)

// ScheduleHandler は演奏枠のエンドポイントを扱う
type ScheduleHandler struct {
	scheduleService ScheduleServiceInterface
}

func NewScheduleHandler(scheduleService ScheduleServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

type GigRequest struct {
	Act     []UserRef `json:"act" validate:"required,min=1"`
	StartAt string    `json:"start_at" validate:"required" example:"2026-05-01T19:00:00+09:00"`
	EndAt   string    `json:"end_at" validate:"required" example:"2026-05-01T19:45:00+09:00"`
}

type AddGigsRequest struct {
	Gigs []GigRequest `json:"gigs" validate:"required,min=1,dive"`
}

type AddGigsResponse struct {
	Event    *EventResponse `json:"event"`
	Accepted []*GigResponse `json:"accepted"`
	Rejected []*GigResponse `json:"rejected"`
}

// AddGigs godoc
// @Summary 演奏枠を一括追加
// @Description 候補の演奏枠を衝突フィルターに通して追加します。受理と拒否の両方を返します
// @Tags gigs
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body AddGigsRequest true "演奏枠の候補"
// @Success 200 {object} AddGigsResponse
// @Failure 400 {object} map[string]string
// @Router /events/{id}/gigs [post]
func (h *ScheduleHandler) AddGigs(c echo.Context) error {
	var req AddGigsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	inputs := make([]application.GigInput, 0, len(req.Gigs))
	for _, g := range req.Gigs {
		startAt, err := time.Parse(time.RFC3339, g.StartAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "開始時刻の形式が不正です")
		}
		endAt, err := time.Parse(time.RFC3339, g.EndAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "終了時刻の形式が不正です")
		}
		input := application.GigInput{StartAt: startAt, EndAt: endAt}
		for _, u := range g.Act {
			ref, err := u.toDomain()
			if err != nil {
				return domainError(err)
			}
			input.Act = append(input.Act, ref)
		}
		inputs = append(inputs, input)
	}

	out, err := h.scheduleService.AddGigs(c.Request().Context(), c.Param("id"), inputs)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, AddGigsResponse{
		Event:    toEventResponse(out.Event),
		Accepted: toGigResponses(out.Accepted),
		Rejected: toGigResponses(out.Rejected),
	})
}

type RemoveGigsRequest struct {
	GigIDs []string `json:"gig_ids" validate:"required,min=1"`
}

// RemoveGigs godoc
// @Summary 演奏枠を一括削除
// @Description IDが一致する演奏枠を削除します。出演しなくなった出演者の承認チケットも連動削除されます
// @Tags gigs
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body RemoveGigsRequest true "削除する演奏枠のID"
// @Success 200 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Router /events/{id}/gigs [delete]
func (h *ScheduleHandler) RemoveGigs(c echo.Context) error {
	var req RemoveGigsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	e, err := h.scheduleService.RemoveGigs(c.Request().Context(), c.Param("id"), req.GigIDs)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

type RescheduleGigRequest struct {
	StartAt string `json:"start_at" validate:"required"`
	EndAt   string `json:"end_at" validate:"required"`
}

// RescheduleGig godoc
// @Summary 演奏枠の時間帯を変更
// @Description IDが一致する演奏枠の時間帯を変更し、イベント全体の時間帯を再導出します
// @Tags gigs
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param gigId path string true "演奏枠ID"
// @Param request body RescheduleGigRequest true "新しい時間帯"
// @Success 200 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/gigs/{gigId} [put]
func (h *ScheduleHandler) RescheduleGig(c echo.Context) error {
	var req RescheduleGigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開始時刻の形式が不正です")
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "終了時刻の形式が不正です")
	}

	e, err := h.scheduleService.RescheduleGig(c.Request().Context(), c.Param("id"), c.Param("gigId"), startAt, endAt)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}
