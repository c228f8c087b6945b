package application

import (
	"context"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/participation"
	"github.com/Laustrup/go-gig-booking/internal/domain/transaction"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
	redisinfra "github.com/Laustrup/go-gig-booking/internal/infrastructure/redis"
	"github.com/Laustrup/go-gig-booking/internal/pkg/metrics"
)

// ParticipationService はイベントへの参加を扱うサービス
type ParticipationService struct {
	aggregateStore
}

func NewParticipationService(tm transaction.Manager, er event.Repository, lm *redisinfra.LockManager, wc *redisinfra.WindowCache, m *metrics.Metrics) *ParticipationService {
	return &ParticipationService{aggregateStore{
		txManager:   tm,
		eventRepo:   er,
		lockManager: lm,
		windowCache: wc,
		metrics:     m,
	}}
}

// AddParticipation は参加を追加する（参加者ごとに最大1件）
func (s *ParticipationService) AddParticipation(ctx context.Context, eventID string, participant user.Ref, status participation.Status) (*participation.Participation, error) {
	p := participation.NewParticipation(eventID, participant, status)
	_, err := s.mutate(ctx, eventID, "add_participation", func(e *event.Event) error {
		return e.AddParticipation(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveParticipation は参加者IDが一致する参加を削除する
func (s *ParticipationService) RemoveParticipation(ctx context.Context, eventID, participantID string) error {
	_, err := s.mutate(ctx, eventID, "remove_participation", func(e *event.Event) error {
		return e.RemoveParticipation(participantID)
	})
	return err
}

// SetParticipation は参加者IDが一致する参加の状態を上書きする
func (s *ParticipationService) SetParticipation(ctx context.Context, eventID, participantID string, status participation.Status) (*participation.Participation, error) {
	var updated *participation.Participation
	_, err := s.mutate(ctx, eventID, "set_participation", func(e *event.Event) error {
		p, err := e.SetParticipation(participantID, status)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
