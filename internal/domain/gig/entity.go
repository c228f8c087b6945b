package gig

import (
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// Gig はイベント内の1つの演奏枠を表す
// 区間は半開区間 [StartAt, EndAt) として扱う
type Gig struct {
	ID        string
	EventID   string
	Act       []user.Ref // 出演者の集合（非空）
	StartAt   time.Time
	EndAt     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGig は新しい演奏枠を作成する
func NewGig(eventID string, act []user.Ref, startAt, endAt time.Time) *Gig {
	now := time.Now()
	return &Gig{
		EventID:   eventID,
		Act:       act,
		StartAt:   startAt,
		EndAt:     endAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は演奏枠の検証を行う
func (g *Gig) Validate() error {
	if len(g.Act) == 0 {
		return ErrActRequired
	}
	seen := make(map[string]bool, len(g.Act))
	for _, p := range g.Act {
		if err := p.Validate(); err != nil {
			return err
		}
		if !p.IsPerformer() {
			return ErrActNotPerformer
		}
		if seen[p.ID] {
			return ErrDuplicatePerformer
		}
		seen[p.ID] = true
	}
	if !g.StartAt.Before(g.EndAt) {
		return ErrInvalidGigTime
	}
	return nil
}

// Reschedule は演奏枠の時刻を変更する
func (g *Gig) Reschedule(startAt, endAt time.Time) error {
	if !startAt.Before(endAt) {
		return ErrInvalidGigTime
	}
	g.StartAt = startAt
	g.EndAt = endAt
	g.UpdatedAt = time.Now()
	return nil
}

// Overlaps は他の演奏枠と時間帯が重なるかを返す
func (g *Gig) Overlaps(other *Gig) bool {
	return g.StartAt.Before(other.EndAt) && other.StartAt.Before(g.EndAt)
}

// HasPerformer は指定した出演者が含まれるかを返す
func (g *Gig) HasPerformer(performerID string) bool {
	for _, p := range g.Act {
		if p.ID == performerID {
			return true
		}
	}
	return false
}

// SharesPerformer は他の演奏枠と出演者を共有するかを返す
func (g *Gig) SharesPerformer(other *Gig) bool {
	for _, p := range other.Act {
		if g.HasPerformer(p.ID) {
			return true
		}
	}
	return false
}

// SameBooking は同一の予約（同じ出演者集合かつ同じ時間帯）かを返す
func (g *Gig) SameBooking(other *Gig) bool {
	if len(g.Act) != len(other.Act) {
		return false
	}
	for _, p := range other.Act {
		if !g.HasPerformer(p.ID) {
			return false
		}
	}
	return g.StartAt.Equal(other.StartAt) && g.EndAt.Equal(other.EndAt)
}

// ActIDs は出演者IDの一覧を返す
func (g *Gig) ActIDs() []string {
	ids := make([]string, len(g.Act))
	for i, p := range g.Act {
		ids[i] = p.ID
	}
	return ids
}
