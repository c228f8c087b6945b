package handler

import (
	"context"
	"time"

	"github.com/Laustrup/go-gig-booking/internal/application"
	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
	redisinfra "github.com/Laustrup/go-gig-booking/internal/infrastructure/redis"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*event.Event, error)
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	GetEventWindow(ctx context.Context, id string) (*redisinfra.CachedWindow, error)
	ListEvents(ctx context.Context, limit, offset int) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, input application.UpdateEventInput) (*event.Event, error)
	SetVenue(ctx context.Context, eventID string, venue user.Ref) (*event.Event, error)
	ChangeCancelledStatus(ctx context.Context, eventID string, caller user.Ref) (tristate.Value, error)
	DeleteEvent(ctx context.Context, id string) error
}

// ScheduleServiceInterface は演奏枠サービスのインターフェース
type ScheduleServiceInterface interface {
	AddGigs(ctx context.Context, eventID string, inputs []application.GigInput) (*application.AddGigsOutput, error)
	RemoveGigs(ctx context.Context, eventID string, gigIDs []string) (*event.Event, error)
	RescheduleGig(ctx context.Context, eventID, gigID string, startAt, endAt time.Time) (*event.Event, error)
}

// RequestServiceInterface は承認チケットサービスのインターフェース
type RequestServiceInterface interface {
	AcceptRequest(ctx context.Context, eventID, requestID string) (*request.Request, error)
	DeclineRequest(ctx context.Context, eventID, requestID string) (*request.Request, error)
	ListRequests(ctx context.Context, eventID string) ([]*request.Request, error)
	VenueHasApproved(ctx context.Context, eventID string) (bool, error)
}

// ParticipationServiceInterface は参加サービスのインターフェース
type ParticipationServiceInterface interface {
	AddParticipation(ctx context.Context, eventID string, participant user.Ref, status participation.Status) (*participation.Participation, error)
	SetParticipation(ctx context.Context, eventID, participantID string, status participation.Status) (*participation.Participation, error)
	RemoveParticipation(ctx context.Context, eventID, participantID string) error
}
