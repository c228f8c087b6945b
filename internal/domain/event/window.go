package event

import (
	"fmt"
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
)

// Window はイベント全体の時間帯（開始・終了・所要時間）を表す
type Window struct {
	StartAt  *time.Time
	EndAt    *time.Time
	Duration time.Duration
}

// DeriveWindow は演奏枠の集合からイベントの時間帯を導出する
// 演奏枠が空の場合は開場時刻と明示的な終了時刻にフォールバックする
// 純粋関数であり、何度呼び出しても同じ入力からは同じ結果になる
func DeriveWindow(gigs []*gig.Gig, openDoors, endFallback *time.Time) (Window, error) {
	if len(gigs) == 0 {
		return deriveEmptyWindow(openDoors, endFallback)
	}

	startAt := gigs[0].StartAt
	endAt := gigs[0].EndAt
	for _, g := range gigs {
		if g.EndAt.Before(g.StartAt) {
			return Window{}, fmt.Errorf("%w: 演奏枠の終了時刻が開始時刻より前です", ErrInvalidTimeRange)
		}
		if g.StartAt.Before(startAt) {
			startAt = g.StartAt
		}
		if g.EndAt.After(endAt) {
			endAt = g.EndAt
		}
	}

	if openDoors != nil && openDoors.After(startAt) {
		return Window{}, fmt.Errorf("%w: 開場時刻が開始時刻より後です", ErrInvalidTimeRange)
	}

	return Window{
		StartAt:  &startAt,
		EndAt:    &endAt,
		Duration: endAt.Sub(startAt),
	}, nil
}

func deriveEmptyWindow(openDoors, endFallback *time.Time) (Window, error) {
	w := Window{StartAt: openDoors, EndAt: endFallback}
	if w.EndAt == nil {
		w.EndAt = openDoors
	}
	if w.StartAt != nil && w.EndAt != nil {
		if w.EndAt.Before(*w.StartAt) {
			return Window{}, fmt.Errorf("%w: 終了時刻が開場時刻より前です", ErrInvalidTimeRange)
		}
		w.Duration = w.EndAt.Sub(*w.StartAt)
	}
	return w, nil
}

// deriveWindow は集約の時間帯を再導出する
// 現在のEndAtを空集合時のフォールバックとして使う
func (e *Event) deriveWindow() error {
	w, err := DeriveWindow(e.Gigs, e.OpenDoors, e.EndAt)
	if err != nil {
		return err
	}
	e.StartAt = w.StartAt
	e.EndAt = w.EndAt
	e.Duration = w.Duration
	return nil
}
