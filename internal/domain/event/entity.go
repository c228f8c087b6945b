package event

import (
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// Event はイベント集約のルートを表す
// 演奏枠・承認チケット・参加の各コレクションを排他的に所有し、
// 時間帯の導出と承認チケットの整合性を単独で保証する
//
// 不変条件:
//   - StartAt <= EndAt
//   - 演奏枠が存在する場合、StartAt = min(gig.StartAt)、EndAt = max(gig.EndAt)
//   - OpenDoors <= StartAt
//   - 承認チケットの対象 ≡ 現在の演奏枠に登場する出演者 ∪ 現在の会場
//
// 同一インスタンスへの操作は呼び出し側で直列化すること
type Event struct {
	ID          string
	Title       string
	Description string

	OpenDoors *time.Time
	StartAt   *time.Time
	EndAt     *time.Time
	Duration  time.Duration

	Voluntary tristate.Value
	Public    tristate.Value
	Cancelled tristate.Value
	SoldOut   tristate.Value

	Location    string
	Price       int64 // 最小通貨単位
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
	Version   int // 楽観的ロック用
}

// NewEvent は新しいイベントを作成する
// 会場が指定されている場合、会場宛ての承認チケットを初期発行する
func NewEvent(title, description string, openDoors *time.Time, venue *user.Ref) (*Event, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if venue != nil && !venue.IsVenue() {
		return nil, ErrNotVenue
	}

	now := time.Now()
	e := &Event{
		Title:       title,
		Description: description,
		OpenDoors:   openDoors,
		Voluntary:   tristate.Undefined,
		Public:      tristate.Undefined,
		Cancelled:   tristate.Undefined,
		SoldOut:     tristate.Undefined,
		Venue:       venue,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     0,
	}
	if venue != nil {
		e.Location = venue.Location
		e.Requests = append(e.Requests, request.NewRequest(e.ID, *venue, e.Title))
	}
	if err := e.deriveWindow(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate はイベントの検証を行う
func (e *Event) Validate() error {
	if e.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

func (e *Event) touch() {
	e.UpdatedAt = time.Now()
}

// SetOpenDoors は開場時刻を変更し、時間帯を再導出する
// 演奏枠がなく終了時刻が開場時刻由来の場合は、時間帯ごと新しい開場時刻に追従する
// 再導出に失敗した場合は元の値に巻き戻す
func (e *Event) SetOpenDoors(openDoors *time.Time) error {
	prevOpen := e.OpenDoors
	prevStart, prevEnd, prevDuration := e.StartAt, e.EndAt, e.Duration

	if len(e.Gigs) == 0 && e.StartAt != nil && e.EndAt != nil && e.EndAt.Equal(*e.StartAt) {
		e.EndAt = nil
	}
	e.OpenDoors = openDoors
	if err := e.deriveWindow(); err != nil {
		e.OpenDoors = prevOpen
		e.StartAt, e.EndAt, e.Duration = prevStart, prevEnd, prevDuration
		return err
	}
	e.touch()
	return nil
}

// === 演奏枠の管理 ===

// AddGigsResult は演奏枠の追加結果を表す
type AddGigsResult struct {
	Accepted []*gig.Gig
	Rejected []*gig.Gig
}

// AddGigs は候補の演奏枠を衝突フィルターに通して追加する
// 新たに登場した出演者には承認チケットを発行し、時間帯を再導出する
// 再導出に失敗した場合は追加分を巻き戻し、イベントは呼び出し前の状態に戻る
func (e *Event) AddGigs(candidates []*gig.Gig) (*AddGigsResult, error) {
	for _, g := range candidates {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}

	accepted, rejected := FilterConflicts(e.Gigs, candidates)
	if len(accepted) == 0 {
		return &AddGigsResult{Rejected: rejected}, nil
	}

	prevStart, prevEnd, prevDuration := e.StartAt, e.EndAt, e.Duration
	prevLen := len(e.Gigs)

	for _, g := range accepted {
		g.EventID = e.ID
		e.Gigs = append(e.Gigs, g)
	}
	created := e.createRequests(accepted)

	if err := e.deriveWindow(); err != nil {
		e.Gigs = e.Gigs[:prevLen]
		e.removeRequests(created)
		e.StartAt, e.EndAt, e.Duration = prevStart, prevEnd, prevDuration
		return nil, err
	}

	e.touch()
	return &AddGigsResult{Accepted: accepted, Rejected: rejected}, nil
}

// RemoveGigs はIDが一致する演奏枠を削除する
// どの演奏枠にも登場しなくなった出演者の承認チケットは連動して削除される
// 削除後の再導出は時間帯を縮めるだけなので巻き戻しは行わない
func (e *Event) RemoveGigs(gigIDs []string) error {
	removedSet := make(map[string]bool, len(gigIDs))
	for _, id := range gigIDs {
		removedSet[id] = true
	}

	var removed []*gig.Gig
	remaining := e.Gigs[:0]
	for _, g := range e.Gigs {
		if removedSet[g.ID] {
			removed = append(removed, g)
		} else {
			remaining = append(remaining, g)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	e.Gigs = remaining

	for _, g := range removed {
		for _, p := range g.Act {
			if !e.isPerformerInGigs(p.ID) {
				e.removeRequestByUser(p.ID)
			}
		}
	}

	if err := e.deriveWindow(); err != nil {
		return err
	}
	e.touch()
	return nil
}

// RescheduleGig はIDが一致する演奏枠の時間帯を変更する
// 再導出に失敗した場合は元の時間帯に巻き戻す
func (e *Event) RescheduleGig(gigID string, startAt, endAt time.Time) (*gig.Gig, error) {
	var target *gig.Gig
	for _, g := range e.Gigs {
		if g.ID == gigID {
			target = g
			break
		}
	}
	if target == nil {
		return nil, gig.ErrGigNotFound
	}

	prevGigStart, prevGigEnd := target.StartAt, target.EndAt
	prevStart, prevEnd, prevDuration := e.StartAt, e.EndAt, e.Duration

	if err := target.Reschedule(startAt, endAt); err != nil {
		return nil, err
	}
	if err := e.deriveWindow(); err != nil {
		target.StartAt, target.EndAt = prevGigStart, prevGigEnd
		e.StartAt, e.EndAt, e.Duration = prevStart, prevEnd, prevDuration
		return nil, err
	}

	e.touch()
	return target, nil
}

func (e *Event) isPerformerInGigs(performerID string) bool {
	for _, g := range e.Gigs {
		if g.HasPerformer(performerID) {
			return true
		}
	}
	return false
}

// === 承認チケットの整合 ===

// createRequests は新たに登場した出演者へ承認チケットを発行する
// 既にチケットを持つ出演者はスキップする（冪等）
func (e *Event) createRequests(newGigs []*gig.Gig) []*request.Request {
	var created []*request.Request
	for _, g := range newGigs {
		for _, p := range g.Act {
			if e.findRequestByUser(p.ID) != nil {
				continue
			}
			r := request.NewRequest(e.ID, p, e.Title)
			e.Requests = append(e.Requests, r)
			created = append(created, r)
		}
	}
	return created
}

func (e *Event) findRequestByUser(userID string) *request.Request {
	for _, r := range e.Requests {
		if r.User.ID == userID {
			return r
		}
	}
	return nil
}

func (e *Event) removeRequestByUser(userID string) {
	for i, r := range e.Requests {
		if r.User.ID == userID {
			e.Requests = append(e.Requests[:i], e.Requests[i+1:]...)
			return
		}
	}
}

func (e *Event) removeRequests(targets []*request.Request) {
	for _, t := range targets {
		for i, r := range e.Requests {
			if r == t {
				e.Requests = append(e.Requests[:i], e.Requests[i+1:]...)
				break
			}
		}
	}
}

// AcceptRequest はIDが一致する承認チケットを承認する
func (e *Event) AcceptRequest(requestID string) (*request.Request, error) {
	r := e.findRequestByID(requestID)
	if r == nil {
		return nil, request.ErrRequestNotFound
	}
	if err := r.Approve(); err != nil {
		return nil, err
	}
	e.touch()
	return r, nil
}

// DeclineRequest はIDが一致する承認チケットを拒否する
func (e *Event) DeclineRequest(requestID string) (*request.Request, error) {
	r := e.findRequestByID(requestID)
	if r == nil {
		return nil, request.ErrRequestNotFound
	}
	if err := r.Decline(); err != nil {
		return nil, err
	}
	e.touch()
	return r, nil
}

func (e *Event) findRequestByID(requestID string) *request.Request {
	for _, r := range e.Requests {
		if r.ID == requestID {
			return r
		}
	}
	return nil
}

// VenueHasApproved は会場が承認済みかを返す
func (e *Event) VenueHasApproved() bool {
	for _, r := range e.Requests {
		if r.User.IsVenue() && r.Approved.IsTrue() {
			return true
		}
	}
	return false
}

// SetVenue は会場を変更する
// 旧会場の承認チケットを削除し、新会場へ未決定のチケットを発行する
// 会場が変わると新会場の再承認が必要になるため、イベントは非公開に戻る
func (e *Event) SetVenue(newVenue user.Ref) (*request.Request, error) {
	if !newVenue.IsVenue() {
		return nil, ErrNotVenue
	}

	if e.Venue != nil {
		e.removeRequestByUser(e.Venue.ID)
	}
	e.Venue = &newVenue
	e.Public = tristate.False
	if e.Location == "" {
		e.Location = newVenue.Location
	}

	r := request.NewRequest(e.ID, newVenue, e.Title)
	e.Requests = append(e.Requests, r)
	e.touch()
	return r, nil
}

// ChangeCancelledStatus はキャンセル状態を切り替える
// 呼び出し元が現在の会場でない場合は何もせず現在の値を返す（権限ゲート）
func (e *Event) ChangeCancelledStatus(caller user.Ref) tristate.Value {
	if e.Venue == nil || caller.ID != e.Venue.ID {
		return e.Cancelled
	}
	if e.Cancelled.IsTrue() {
		e.Cancelled = tristate.False
	} else {
		e.Cancelled = tristate.True
	}
	e.touch()
	return e.Cancelled
}

// === 参加の管理 ===

// AddParticipation は参加を追加する
// 参加者ごとに最大1件のため、同じ参加者の重複追加はエラーになる
func (e *Event) AddParticipation(p *participation.Participation) error {
	p.EventID = e.ID
	if err := p.Validate(); err != nil {
		return err
	}
	if e.findParticipation(p.Participant.ID) != nil {
		return participation.ErrAlreadyParticipating
	}
	e.Participations = append(e.Participations, p)
	e.touch()
	return nil
}

// RemoveParticipation は参加者IDが一致する参加を削除する
func (e *Event) RemoveParticipation(participantID string) error {
	for i, p := range e.Participations {
		if p.Participant.ID == participantID {
			e.Participations = append(e.Participations[:i], e.Participations[i+1:]...)
			e.touch()
			return nil
		}
	}
	return participation.ErrParticipationNotFound
}

// SetParticipation は参加者IDが一致する参加の状態を上書きする
func (e *Event) SetParticipation(participantID string, status participation.Status) (*participation.Participation, error) {
	p := e.findParticipation(participantID)
	if p == nil {
		return nil, participation.ErrParticipationNotFound
	}
	if err := p.ChangeStatus(status); err != nil {
		return nil, err
	}
	e.touch()
	return p, nil
}

func (e *Event) findParticipation(participantID string) *participation.Participation {
	for _, p := range e.Participations {
		if p.Participant.ID == participantID {
			return p
		}
	}
	return nil
}
