package application

import (
	"context"
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/request"
	"github.com/Laustrup/go-gig-booking/internal/domain/transaction"
	redisinfra "github.com/Laustrup/go-gig-booking/internal/infrastructure/redis"
	"github.com/Laustrup/go-gig-booking/internal/pkg/metrics"
)

// RequestService は承認チケットの決定を扱うサービス
type RequestService struct {
	aggregateStore
}

func NewRequestService(tm transaction.Manager, er event.Repository, lm *redisinfra.LockManager, wc *redisinfra.WindowCache, m *metrics.Metrics) *RequestService {
	return &RequestService{aggregateStore{
		txManager:   tm,
		eventRepo:   er,
		lockManager: lm,
		windowCache: wc,
		metrics:     m,
	}}
}

// AcceptRequest は承認チケットを承認する
func (s *RequestService) AcceptRequest(ctx context.Context, eventID, requestID string) (*request.Request, error) {
	var accepted *request.Request
	_, err := s.mutate(ctx, eventID, "accept_request", func(e *event.Event) error {
		r, err := e.AcceptRequest(requestID)
		if err != nil {
			return err
		}
		accepted = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// DeclineRequest は承認チケットを拒否する
func (s *RequestService) DeclineRequest(ctx context.Context, eventID, requestID string) (*request.Request, error) {
	var declined *request.Request
	_, err := s.mutate(ctx, eventID, "decline_request", func(e *event.Event) error {
		r, err := e.DeclineRequest(requestID)
		if err != nil {
			return err
		}
		declined = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return declined, nil
}

// ListRequests はイベントの承認チケット一覧を返す
func (s *RequestService) ListRequests(ctx context.Context, eventID string) ([]*request.Request, error) {
	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return e.Requests, nil
}

// VenueHasApproved は会場が承認済みかを返す
func (s *RequestService) VenueHasApproved(ctx context.Context, eventID string) (bool, error) {
	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return false, err
	}
	return e.VenueHasApproved(), nil
}

// DeclineStaleRequests は指定期間を超えて未決定のままの承認チケットを一括拒否する
// バックグラウンドワーカーから定期的に呼ばれる
func (s *RequestService) DeclineStaleRequests(ctx context.Context, olderThan time.Duration) (int, error) {
	declined, err := s.eventRepo.DeclineStaleRequests(ctx, olderThan)
	if err != nil {
		return 0, err
	}
	if s.metrics != nil && declined > 0 {
		s.metrics.RequestReconciliations.WithLabelValues("auto_declined").Add(float64(declined))
	}
	return declined, nil
}
