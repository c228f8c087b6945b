package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Laustrup/go-gig-booking/internal/domain/event"
	"github.com/Laustrup/go-gig-booking/internal/domain/transaction"
	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
	"github.com/Laustrup/go-gig-booking/internal/domain/user"
	redisinfra "github.com/Laustrup/go-gig-booking/internal/infrastructure/redis"
	"github.com/Laustrup/go-gig-booking/internal/pkg/logger"
	"github.com/Laustrup/go-gig-booking/internal/pkg/metrics"
)

// windowCacheTTL は導出済み時間帯キャッシュの有効期限
const windowCacheTTL = 5 * time.Minute

// aggregateStore はイベント集約のロック付き読み書きをまとめる
// 同一イベントへの変更操作はRedisの分散ロックで直列化する
type aggregateStore struct {
	txManager   transaction.Manager
	eventRepo   event.Repository
	lockManager *redisinfra.LockManager
	windowCache *redisinfra.WindowCache
	metrics     *metrics.Metrics
}

// mutate はイベント集約をロック下で読み込み、fnを適用して保存する
func (s *aggregateStore) mutate(ctx context.Context, eventID string, operation string, fn func(*event.Event) error) (*event.Event, error) {
	if s.lockManager != nil {
		start := time.Now()
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, redisinfra.EventLockKey(eventID), 10*time.Second, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				return nil, fmt.Errorf("イベントが他の操作によって処理中です")
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer func() {
			lock.Release(ctx)
			if s.metrics != nil {
				s.metrics.DistributedLockDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
			}
		}()
	}

	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := fn(e); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.eventRepo.Save(ctx, tx, e); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	if s.windowCache != nil {
		s.windowCache.Invalidate(ctx, eventID)
	}
	return e, nil
}

// EventService はイベント集約のライフサイクルを扱うサービス
type EventService struct {
	aggregateStore
}

func NewEventService(tm transaction.Manager, er event.Repository, lm *redisinfra.LockManager, wc *redisinfra.WindowCache, m *metrics.Metrics) *EventService {
	return &EventService{aggregateStore{
		txManager:   tm,
		eventRepo:   er,
		lockManager: lm,
		windowCache: wc,
		metrics:     m,
	}}
}

type CreateEventInput struct {
	Title       string
	Description string
	OpenDoors   *time.Time
	Venue       *user.Ref
	Location    string
	Price       int64
	TicketsURL  string
	ContactInfo string
}

func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*event.Event, error) {
	e, err := event.NewEvent(input.Title, input.Description, input.OpenDoors, input.Venue)
	if err != nil {
		return nil, err
	}
	if input.Location != "" {
		e.Location = input.Location
	}
	e.Price = input.Price
	e.TicketsURL = input.TicketsURL
	e.ContactInfo = input.ContactInfo

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.eventRepo.Create(ctx, tx, e); err != nil {
		return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	return e, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.eventRepo.List(ctx, limit, offset)
}

// GetEventWindow は導出済みの時間帯を返す
// キャッシュにあればそれを返し、なければ集約を読み込んで再導出した結果を格納する
func (s *EventService) GetEventWindow(ctx context.Context, id string) (*redisinfra.CachedWindow, error) {
	if s.windowCache != nil {
		w, err := s.windowCache.Get(ctx, id)
		if err == nil {
			return w, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("時間帯キャッシュの取得に失敗", zap.String("event_id", id), zap.Error(err))
		}
	}

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := e.ToRecord()
	w := &redisinfra.CachedWindow{
		StartAt:         rec.StartAt,
		EndAt:           rec.EndAt,
		DurationMinutes: rec.DurationMinutes,
	}
	if s.windowCache != nil {
		s.windowCache.Set(ctx, id, w, windowCacheTTL)
	}
	return w, nil
}

type UpdateEventInput struct {
	ID          string
	Title       string
	Description string
	OpenDoors   *time.Time
	Location    string
	Price       int64
	TicketsURL  string
	ContactInfo string
	Voluntary   tristate.Value
	Public      tristate.Value
	SoldOut     tristate.Value
}

// UpdateEvent はイベントの基本属性を更新する
// 演奏枠・承認チケット・参加は専用の操作でのみ変更できる
func (s *EventService) UpdateEvent(ctx context.Context, input UpdateEventInput) (*event.Event, error) {
	return s.mutate(ctx, input.ID, "update_event", func(e *event.Event) error {
		e.Title = input.Title
		e.Description = input.Description
		if err := e.SetOpenDoors(input.OpenDoors); err != nil {
			return err
		}
		if input.Location != "" {
			e.Location = input.Location
		}
		e.Price = input.Price
		e.TicketsURL = input.TicketsURL
		e.ContactInfo = input.ContactInfo
		e.Voluntary = tristate.OrUndefined(input.Voluntary)
		e.Public = tristate.OrUndefined(input.Public)
		e.SoldOut = tristate.OrUndefined(input.SoldOut)
		if err := e.Validate(); err != nil {
			return fmt.Errorf("バリデーションエラー: %w", err)
		}
		return nil
	})
}

// SetVenue は会場を変更し、新会場宛ての承認チケットを発行する
func (s *EventService) SetVenue(ctx context.Context, eventID string, venue user.Ref) (*event.Event, error) {
	return s.mutate(ctx, eventID, "set_venue", func(e *event.Event) error {
		_, err := e.SetVenue(venue)
		return err
	})
}

// ChangeCancelledStatus はキャンセル状態を切り替える
// 呼び出し元が現在の会場でない場合は変更されず現在の値が返る
func (s *EventService) ChangeCancelledStatus(ctx context.Context, eventID string, caller user.Ref) (tristate.Value, error) {
	var result tristate.Value
	_, err := s.mutate(ctx, eventID, "change_cancelled", func(e *event.Event) error {
		result = e.ChangeCancelledStatus(caller)
		return nil
	})
	if err != nil {
		return tristate.Undefined, err
	}
	return result, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.windowCache != nil {
		s.windowCache.Invalidate(ctx, id)
	}
	return nil
}
