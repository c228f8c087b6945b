package handler

import (
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// UserRef はユーザー参照のDTO
type UserRef struct {
	Kind     string `json:"kind" validate:"required" example:"band"`
	ID       string `json:"id" validate:"required" example:"band-123"`
	Name     string `json:"name" example:"ザ・ルースターズ"`
	Location string `json:"location,omitempty" example:"東京都"`
}

func (u UserRef) toDomain() (user.Ref, error) {
	kind, err := user.ParseKind(u.Kind)
	if err != nil {
		return user.Ref{}, err
	}
	return user.Ref{Kind: kind, ID: u.ID, Name: u.Name, Location: u.Location}, nil
}

func toUserRef(r user.Ref) UserRef {
	return UserRef{Kind: string(r.Kind), ID: r.ID, Name: r.Name, Location: r.Location}
}

// GigResponse は演奏枠のレスポンス
type GigResponse struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	Act     []UserRef `json:"act"`
	StartAt string    `json:"start_at"`
	EndAt   string    `json:"end_at"`
}

func toGigResponse(g *gig.Gig) *GigResponse {
	act := make([]UserRef, len(g.Act))
	for i, p := range g.Act {
		act[i] = toUserRef(p)
	}
	return &GigResponse{
		ID:      g.ID,
		EventID: g.EventID,
		Act:     act,
		StartAt: g.StartAt.Format(time.RFC3339),
		EndAt:   g.EndAt.Format(time.RFC3339),
	}
}

func toGigResponses(gigs []*gig.Gig) []*GigResponse {
	responses := make([]*GigResponse, len(gigs))
	for i, g := range gigs {
		responses[i] = toGigResponse(g)
	}
	return responses
}

// RequestResponse は承認チケットのレスポンス
type RequestResponse struct {
	ID       string  `json:"id"`
	EventID  string  `json:"event_id"`
	User     UserRef `json:"user"`
	Approved string  `json:"approved"`
	Message  string  `json:"message"`
}

func toRequestResponse(r *request.Request) *RequestResponse {
	return &RequestResponse{
		ID:       r.ID,
		EventID:  r.EventID,
		User:     toUserRef(r.User),
		Approved: string(r.Approved),
		Message:  r.Message,
	}
}

// ParticipationResponse は参加のレスポンス
type ParticipationResponse struct {
	EventID     string  `json:"event_id"`
	Participant UserRef `json:"participant"`
	Status      string  `json:"status"`
}

func toParticipationResponse(p *participation.Participation) *ParticipationResponse {
	return &ParticipationResponse{
		EventID:     p.EventID,
		Participant: toUserRef(p.Participant),
		Status:      string(p.Status),
	}
}

// EventResponse はイベント集約のレスポンス
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	OpenDoors       *string `json:"open_doors"`
	StartAt         *string `json:"start_at"`
	EndAt           *string `json:"end_at"`
	DurationMinutes int64   `json:"duration_minutes"`

	Voluntary string `json:"voluntary"`
	Public    string `json:"public"`
	Cancelled string `json:"cancelled"`
	SoldOut   string `json:"sold_out"`

	Location    string `json:"location"`
	Price       int64  `json:"price"`
	TicketsURL  string `json:"tickets_url,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`

	Venue *UserRef `json:"venue,omitempty"`

	Gigs           []*GigResponse           `json:"gigs"`
	Requests       []*RequestResponse       `json:"requests"`
	Participations []*ParticipationResponse `json:"participations"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Version   int    `json:"version"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toEventResponse(e *event.Event) *EventResponse {
	rec := e.ToRecord()

	requests := make([]*RequestResponse, len(e.Requests))
	for i, r := range e.Requests {
		requests[i] = toRequestResponse(r)
	}
	participations := make([]*ParticipationResponse, len(e.Participations))
	for i, p := range e.Participations {
		participations[i] = toParticipationResponse(p)
	}

	resp := &EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		OpenDoors:       formatTimePtr(e.OpenDoors),
		StartAt:         formatTimePtr(rec.StartAt),
		EndAt:           formatTimePtr(rec.EndAt),
		DurationMinutes: rec.DurationMinutes,
		Voluntary:       string(e.Voluntary),
		Public:          string(e.Public),
		Cancelled:       string(e.Cancelled),
		SoldOut:         string(e.SoldOut),
		Location:        e.Location,
		Price:           e.Price,
		TicketsURL:      e.TicketsURL,
		ContactInfo:     e.ContactInfo,
		Gigs:            toGigResponses(e.Gigs),
		Requests:        requests,
		Participations:  participations,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
		Version:         e.Version,
	}
	if e.Venue != nil {
		v := toUserRef(*e.Venue)
		resp.Venue = &v
	}
	return resp
}
