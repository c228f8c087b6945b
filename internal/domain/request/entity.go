package request

import (
	"fmt"
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// Request はイベントへの承認チケットを表す
// イベントに必要とされるユーザー（出演者または会場）ごとに1件だけ存在する
type Request struct {
	ID        string
	EventID   string
	User      user.Ref
	Approved  tristate.Value
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRequest は未決定状態の新しい承認チケットを作成する
func NewRequest(eventID string, u user.Ref, eventTitle string) *Request {
	now := time.Now()
	return &Request{
		EventID:   eventID,
		User:      u,
		Approved:  tristate.Undefined,
		Message:   fmt.Sprintf("%s に「%s」への出演承認が求められています", u.Name, eventTitle),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Approve は承認チケットを承認状態にする
func (r *Request) Approve() error {
	if r.Approved == tristate.True {
		return ErrRequestAlreadyApproved
	}
	r.Approved = tristate.True
	r.UpdatedAt = time.Now()
	return nil
}

// Decline は承認チケットを拒否状態にする
func (r *Request) Decline() error {
	if r.Approved == tristate.False {
		return ErrRequestAlreadyDeclined
	}
	r.Approved = tristate.False
	r.UpdatedAt = time.Now()
	return nil
}

// IsPending は未決定かを返す
func (r *Request) IsPending() bool {
	return !r.Approved.IsDecided()
}

// Validate は承認チケットの検証を行う
func (r *Request) Validate() error {
	if r.EventID == "" {
		return ErrEventIDRequired
	}
	if err := r.User.Validate(); err != nil {
		return err
	}
	if !r.User.IsPerformer() && !r.User.IsVenue() {
		return ErrUserNotRequirable
	}
	return nil
}
