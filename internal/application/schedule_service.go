package application

import (
	"context"
	"errors"
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/gig"
	"github.com/Laustrup/go-gig-booking/internal/domain/transaction"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
	redisinfra "github.com/Laustrup/go-gig-booking/internal/infrastructure/redis"
	"github.com/Laustrup/go-gig-booking/internal/pkg/metrics"
)

// ScheduleService は演奏枠の追加・削除・変更を扱うサービス
// 変更のたびにイベントの時間帯が再導出され、承認チケットが整合される
type ScheduleService struct {
	aggregateStore
}

func NewScheduleService(tm transaction.Manager, er event.Repository, lm *redisinfra.LockManager, wc *redisinfra.WindowCache, m *metrics.Metrics) *ScheduleService {
	return &ScheduleService{aggregateStore{
		txManager:   tm,
		eventRepo:   er,
		lockManager: lm,
		windowCache: wc,
		metrics:     m,
	}}
}

type GigInput struct {
	Act     []user.Ref
	StartAt time.Time
	EndAt   time.Time
}

type AddGigsOutput struct {
	Event    *event.Event
	Accepted []*gig.Gig
	Rejected []*gig.Gig
}

// AddGigs は候補の演奏枠を衝突フィルターに通してイベントへ追加する
// 受理された枠と拒否された枠の両方を返す（部分受理あり）
func (s *ScheduleService) AddGigs(ctx context.Context, eventID string, inputs []GigInput) (*AddGigsOutput, error) {
	candidates := make([]*gig.Gig, 0, len(inputs))
	for _, in := range inputs {
		candidates = append(candidates, gig.NewGig(eventID, in.Act, in.StartAt, in.EndAt))
	}

	var result *event.AddGigsResult
	var requestsCreated int
	e, err := s.mutate(ctx, eventID, "add_gigs", func(e *event.Event) error {
		before := len(e.Requests)
		r, err := e.AddGigs(candidates)
		if err != nil {
			return err
		}
		result = r
		requestsCreated = len(e.Requests) - before
		return nil
	})
	if err != nil {
		s.recordDerivation(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.GigsAddedTotal.WithLabelValues("accepted").Add(float64(len(result.Accepted)))
		s.metrics.GigsAddedTotal.WithLabelValues("rejected").Add(float64(len(result.Rejected)))
		s.metrics.RequestReconciliations.WithLabelValues("created").Add(float64(requestsCreated))
		s.metrics.WindowDerivationsTotal.WithLabelValues("ok").Inc()
	}
	return &AddGigsOutput{Event: e, Accepted: result.Accepted, Rejected: result.Rejected}, nil
}

// RemoveGigs はIDが一致する演奏枠を削除する
// どの枠にも登場しなくなった出演者の承認チケットは連動して削除される
func (s *ScheduleService) RemoveGigs(ctx context.Context, eventID string, gigIDs []string) (*event.Event, error) {
	var requestsRemoved int
	e, err := s.mutate(ctx, eventID, "remove_gigs", func(e *event.Event) error {
		before := len(e.Requests)
		if err := e.RemoveGigs(gigIDs); err != nil {
			return err
		}
		requestsRemoved = before - len(e.Requests)
		return nil
	})
	if err != nil {
		s.recordDerivation(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RequestReconciliations.WithLabelValues("removed").Add(float64(requestsRemoved))
		s.metrics.WindowDerivationsTotal.WithLabelValues("ok").Inc()
	}
	return e, nil
}

// RescheduleGig はIDが一致する演奏枠の時間帯を変更する
func (s *ScheduleService) RescheduleGig(ctx context.Context, eventID, gigID string, startAt, endAt time.Time) (*event.Event, error) {
	e, err := s.mutate(ctx, eventID, "reschedule_gig", func(e *event.Event) error {
		_, err := e.RescheduleGig(gigID, startAt, endAt)
		return err
	})
	if err != nil {
		s.recordDerivation(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.WindowDerivationsTotal.WithLabelValues("ok").Inc()
	}
	return e, nil
}

func (s *ScheduleService) recordDerivation(err error) {
	if s.metrics == nil {
		return
	}
	if errors.Is(err, event.ErrInvalidTimeRange) {
		s.metrics.WindowDerivationsTotal.WithLabelValues("invalid").Inc()
	}
}
