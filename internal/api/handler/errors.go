package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// domainError はドメインエラーをHTTPステータスに対応付ける
func domainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, gig.ErrGigNotFound),
		errors.Is(err, request.ErrRequestNotFound),
		errors.Is(err, participation.ErrParticipationNotFound),
		errors.Is(err, event.ErrPostNotFound),
		errors.Is(err, event.ErrAlbumNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, request.ErrRequestAlreadyApproved),
		errors.Is(err, request.ErrRequestAlreadyDeclined),
		errors.Is(err, participation.ErrAlreadyParticipating),
		errors.Is(err, event.ErrOptimisticLockConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, event.ErrTitleRequired),
		errors.Is(err, event.ErrInvalidTimeRange),
		errors.Is(err, event.ErrNotVenue),
		errors.Is(err, gig.ErrActRequired),
		errors.Is(err, gig.ErrActNotPerformer),
		errors.Is(err, gig.ErrDuplicatePerformer),
		errors.Is(err, gig.ErrInvalidGigTime),
		errors.Is(err, user.ErrInvalidKind),
		errors.Is(err, user.ErrUserIDRequired),
		errors.Is(err, participation.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
