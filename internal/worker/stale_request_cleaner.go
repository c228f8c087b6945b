package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Laustrup/go-gig-booking/internal/pkg/logger"
	"github.com/Laustrup/go-gig-booking/internal/pkg/metrics"
)

// RequestSweeper は放置された承認チケットを一括拒否するインターフェース
type RequestSweeper interface {
	DeclineStaleRequests(ctx context.Context, olderThan time.Duration) (int, error)
}

// PendingCounter は未決定の承認チケット数を返すインターフェース
type PendingCounter interface {
	CountPendingRequests(ctx context.Context) (int, error)
}

// StaleRequestCleaner は長期間未決定のままの承認チケットを自動拒否するワーカー
type StaleRequestCleaner struct {
	requestService RequestSweeper
	pendingCounter PendingCounter
	metrics        *metrics.Metrics
	interval       time.Duration
	staleAfter     time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewStaleRequestCleaner は新しいクリーナーを作成
func NewStaleRequestCleaner(
	rs RequestSweeper,
	pc PendingCounter,
	m *metrics.Metrics,
	interval time.Duration,
	staleAfter time.Duration,
) *StaleRequestCleaner {
	return &StaleRequestCleaner{
		requestService: rs,
		pendingCounter: pc,
		metrics:        m,
		interval:       interval,
		staleAfter:     staleAfter,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start はクリーナーを開始
func (c *StaleRequestCleaner) Start(ctx context.Context) {
	logger.Info("承認チケットクリーナー開始",
		zap.Duration("interval", c.interval),
		zap.Duration("stale_after", c.staleAfter),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("承認チケットクリーナー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("承認チケットクリーナー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

// Stop はクリーナーを停止
func (c *StaleRequestCleaner) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// sweep は放置された承認チケットを一括拒否し、未決定数のゲージを更新する
func (c *StaleRequestCleaner) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("放置された承認チケットの自動拒否開始")

	count, err := c.requestService.DeclineStaleRequests(ctx, c.staleAfter)
	if err != nil {
		log.Error("承認チケットの自動拒否失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("放置された承認チケットを自動拒否", zap.Int("count", count))
	} else {
		log.Debug("自動拒否対象なし")
	}

	if c.pendingCounter == nil || c.metrics == nil {
		return
	}
	pending, err := c.pendingCounter.CountPendingRequests(ctx)
	if err != nil {
		log.Error("未決定チケット数の取得失敗", zap.Error(err))
		return
	}
	c.metrics.PendingRequests.Set(float64(pending))
}
