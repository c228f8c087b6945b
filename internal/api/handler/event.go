package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Laustrup/go-gig-booking/internal/application"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required" example:"春のライブ2026"`
	Description string   `json:"description" example:"恒例の春公演"`
	OpenDoors   *string  `json:"open_doors" example:"2026-05-01T18:00:00+09:00"`
	Venue       *UserRef `json:"venue"`
	Location    string   `json:"location" example:"東京都世田谷区"`
	Price       int64    `json:"price" validate:"gte=0" example:"3500"`
	TicketsURL  string   `json:"tickets_url"`
	ContactInfo string   `json:"contact_info"`
}

type UpdateEventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	OpenDoors   *string `json:"open_doors"`
	Location    string  `json:"location"`
	Price       int64   `json:"price" validate:"gte=0"`
	TicketsURL  string  `json:"tickets_url"`
	ContactInfo string  `json:"contact_info"`
	Voluntary   string  `json:"voluntary" validate:"omitempty,tristate"`
	Public      string  `json:"public" validate:"omitempty,tristate"`
	SoldOut     string  `json:"sold_out" validate:"omitempty,tristate"`
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create godoc
// @Summary イベントを作成
// @Description 新しいイベントを作成します。会場を指定すると会場宛ての承認チケットが初期発行されます
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	openDoors, err := parseTimePtr(req.OpenDoors)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開場時刻の形式が不正です")
	}

	input := application.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		OpenDoors:   openDoors,
		Location:    req.Location,
		Price:       req.Price,
		TicketsURL:  req.TicketsURL,
		ContactInfo: req.ContactInfo,
	}
	if req.Venue != nil {
		venue, err := req.Venue.toDomain()
		if err != nil {
			return domainError(err)
		}
		input.Venue = &venue
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), input)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// GetByID godoc
// @Summary イベントを取得
// @Description 指定IDのイベント集約を子コレクションを含めて取得します
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	e, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// GetWindow godoc
// @Summary イベントの時間帯を取得
// @Description 演奏枠から導出された開始・終了時刻と所要時間を返します
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} WindowResponse
// @Failure 404 {object} map[string]string
// @Router /events/{id}/window [get]
func (h *EventHandler) GetWindow(c echo.Context) error {
	w, err := h.eventService.GetEventWindow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, WindowResponse{
		StartAt:         formatTimePtr(w.StartAt),
		EndAt:           formatTimePtr(w.EndAt),
		DurationMinutes: w.DurationMinutes,
	})
}

// WindowResponse は導出済み時間帯のレスポンス
type WindowResponse struct {
	StartAt         *string `json:"start_at"`
	EndAt           *string `json:"end_at"`
	DurationMinutes int64   `json:"duration_minutes"`
}

// List godoc
// @Summary イベント一覧を取得
// @Tags events
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} EventResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	events, err := h.eventService.ListEvents(c.Request().Context(), limit, offset)
	if err != nil {
		return domainError(err)
	}

	responses := make([]*EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

// Update godoc
// @Summary イベントを更新
// @Description イベントの基本属性を更新します。演奏枠・承認チケット・参加は専用の操作で変更します
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body UpdateEventRequest true "イベント情報"
// @Success 200 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	openDoors, err := parseTimePtr(req.OpenDoors)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開場時刻の形式が不正です")
	}

	e, err := h.eventService.UpdateEvent(c.Request().Context(), application.UpdateEventInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		OpenDoors:   openDoors,
		Location:    req.Location,
		Price:       req.Price,
		TicketsURL:  req.TicketsURL,
		ContactInfo: req.ContactInfo,
		Voluntary:   tristate.Value(req.Voluntary),
		Public:      tristate.Value(req.Public),
		SoldOut:     tristate.Value(req.SoldOut),
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

type SetVenueRequest struct {
	Venue UserRef `json:"venue" validate:"required"`
}

// SetVenue godoc
// @Summary 会場を変更
// @Description 会場を変更し、新会場宛ての承認チケットを発行します。イベントは非公開に戻ります
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body SetVenueRequest true "新しい会場"
// @Success 200 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Router /events/{id}/venue [put]
func (h *EventHandler) SetVenue(c echo.Context) error {
	var req SetVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	venue, err := req.Venue.toDomain()
	if err != nil {
		return domainError(err)
	}

	e, err := h.eventService.SetVenue(c.Request().Context(), c.Param("id"), venue)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

type ChangeCancelledRequest struct {
	Caller UserRef `json:"caller" validate:"required"`
}

type CancelledResponse struct {
	Cancelled string `json:"cancelled"`
}

// ChangeCancelledStatus godoc
// @Summary キャンセル状態を切り替え
// @Description 呼び出し元が現在の会場の場合のみキャンセル状態を切り替えます
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body ChangeCancelledRequest true "呼び出し元"
// @Success 200 {object} CancelledResponse
// @Router /events/{id}/cancellation [post]
func (h *EventHandler) ChangeCancelledStatus(c echo.Context) error {
	var req ChangeCancelledRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	caller, err := req.Caller.toDomain()
	if err != nil {
		return domainError(err)
	}

	cancelled, err := h.eventService.ChangeCancelledStatus(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, CancelledResponse{Cancelled: string(cancelled)})
}

// Delete godoc
// @Summary イベントを削除
// @Tags events
// @Param id path string true "イベントID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
