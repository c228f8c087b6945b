package event

import (
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// Record はトランスポート層・永続化層と交換するフラットな表現
// 導出済みのStartAt/EndAt/DurationMinutesを含む（受信側は演奏枠なしでは再導出できないため）
type Record struct {
	ID          string
	Title       string
	Description string

	OpenDoors       *time.Time
	StartAt         *time.Time
	EndAt           *time.Time
	DurationMinutes int64

	Voluntary tristate.Value
	Public    tristate.Value
	Cancelled tristate.Value
	SoldOut   tristate.Value

	Location    string
	Price       int64
	TicketsURL  string
	ContactInfo string

	Venue *user.Ref

	Gigs           []*gig.Gig
	Requests       []*request.Request
	Participations []*participation.Participation
	Posts          []*Post
	Albums         []*Album

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// FromRecord はフラットな表現からイベント集約を組み立てる
// 構築時に時間帯を再導出し、不整合があればErrInvalidTimeRangeを返す
func FromRecord(rec Record) (*Event, error) {
	if rec.Title == "" {
		return nil, ErrTitleRequired
	}

	e := &Event{
		ID:             rec.ID,
		Title:          rec.Title,
		Description:    rec.Description,
		OpenDoors:      rec.OpenDoors,
		EndAt:          rec.EndAt,
		Voluntary:      tristate.OrUndefined(rec.Voluntary),
		Public:         tristate.OrUndefined(rec.Public),
		Cancelled:      tristate.OrUndefined(rec.Cancelled),
		SoldOut:        tristate.OrUndefined(rec.SoldOut),
		Location:       rec.Location,
		Price:          rec.Price,
		TicketsURL:     rec.TicketsURL,
		ContactInfo:    rec.ContactInfo,
		Venue:          rec.Venue,
		Gigs:           rec.Gigs,
		Requests:       rec.Requests,
		Participations: rec.Participations,
		Posts:          rec.Posts,
		Albums:         rec.Albums,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
		Version:        rec.Version,
	}
	if e.Location == "" && e.Venue != nil {
		e.Location = e.Venue.Location
	}
	if err := e.deriveWindow(); err != nil {
		return nil, err
	}
	return e, nil
}

// ToRecord はイベント集約をフラットな表現に射影する
func (e *Event) ToRecord() Record {
	return Record{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		OpenDoors:       e.OpenDoors,
		StartAt:         e.StartAt,
		EndAt:           e.EndAt,
		DurationMinutes: int64(e.Duration.Minutes()),
		Voluntary:       e.Voluntary,
		Public:          e.Public,
		Cancelled:       e.Cancelled,
		SoldOut:         e.SoldOut,
		Location:        e.Location,
		Price:           e.Price,
		TicketsURL:      e.TicketsURL,
		ContactInfo:     e.ContactInfo,
		Venue:           e.Venue,
		Gigs:            e.Gigs,
		Requests:        e.Requests,
		Participations:  e.Participations,
		Posts:           e.Posts,
		Albums:          e.Albums,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}
