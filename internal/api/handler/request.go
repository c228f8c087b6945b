package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequestHandler は承認チケットのエンドポイントを扱う
type RequestHandler struct {
	requestService RequestServiceInterface
}

func NewRequestHandler(requestService RequestServiceInterface) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List godoc
// @Summary 承認チケット一覧を取得
// @Tags requests
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {array} RequestResponse
// @Failure 404 {object} map[string]string
// @Router /events/{id}/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	requests, err := h.requestService.ListRequests(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	responses := make([]*RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = toRequestResponse(r)
	}
	return c.JSON(http.StatusOK, responses)
}

// Accept godoc
// @Summary 承認チケットを承認
// @Tags requests
// @Produce json
// @Param id path string true "イベントID"
// @Param requestId path string true "承認チケットID"
// @Success 200 {object} RequestResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /events/{id}/requests/{requestId}/accept [post]
func (h *RequestHandler) Accept(c echo.Context) error {
	r, err := h.requestService.AcceptRequest(c.Request().Context(), c.Param("id"), c.Param("requestId"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toRequestResponse(r))
}

// Decline godoc
// @Summary 承認チケットを拒否
// @Tags requests
// @Produce json
// @Param id path string true "イベントID"
// @Param requestId path string true "承認チケットID"
// @Success 200 {object} RequestResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /events/{id}/requests/{requestId}/decline [post]
func (h *RequestHandler) Decline(c echo.Context) error {
	r, err := h.requestService.DeclineRequest(c.Request().Context(), c.Param("id"), c.Param("requestId"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toRequestResponse(r))
}

// VenueApprovalResponse は会場承認状態のレスポンス
type VenueApprovalResponse struct {
	Approved bool `json:"approved"`
}

// VenueApproval godoc
// @Summary 会場の承認状態を取得
// @Description 現在の会場が承認済みかどうかを返します
// @Tags requests
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} VenueApprovalResponse
// @Failure 404 {object} map[string]string
// @Router /events/{id}/venue-approval [get]
func (h *RequestHandler) VenueApproval(c echo.Context) error {
	approved, err := h.requestService.VenueHasApproved(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, VenueApprovalResponse{Approved: approved})
}
