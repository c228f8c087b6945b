package participation

import (
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/user"
)

// Status は参加の状態を表す
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusInDoubt  Status = "in_doubt"
	StatusCanceled Status = "canceled"
	StatusInvited  Status = "invited"
)

// ParseStatus は文字列からStatusを生成する
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAccepted, StatusInDoubt, StatusCanceled, StatusInvited:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Participation は参加者とイベントの関係を表す
// 1つのイベントにつき参加者ごとに最大1件
type Participation struct {
	ID          string
	EventID     string
	Participant user.Ref
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewParticipation は新しい参加を作成する
func NewParticipation(eventID string, participant user.Ref, status Status) *Participation {
	now := time.Now()
	return &Participation{
		EventID:     eventID,
		Participant: participant,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ChangeStatus は参加状態を変更する
func (p *Participation) ChangeStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

// Validate は参加の検証を行う
func (p *Participation) Validate() error {
	if p.EventID == "" {
		return ErrEventIDRequired
	}
	if err := p.Participant.Validate(); err != nil {
		return err
	}
	if _, err := ParseStatus(string(p.Status)); err != nil {
		return err
	}
	return nil
}
