package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// CachedWindow はキャッシュされる導出済みの時間帯を表す
type CachedWindow struct {
	StartAt         *time.Time `json:"start_at"`
	EndAt           *time.Time `json:"end_at"`
	DurationMinutes int64      `json:"duration_minutes"`
}

// WindowCache はイベントの導出済み時間帯のキャッシュを管理する
// 時間帯は演奏枠の変更時にのみ変わるため、変更操作で必ず無効化する
type WindowCache struct {
	client *redis.Client
}

// NewWindowCache は新しいWindowCacheインスタンスを作成する
func NewWindowCache(client *redis.Client) *WindowCache {
	return &WindowCache{client: client}
}

// Get はイベントの時間帯をキャッシュから取得する
func (c *WindowCache) Get(ctx context.Context, eventID string) (*CachedWindow, error) {
	val, err := c.client.Get(ctx, c.windowKey(eventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var w CachedWindow
	if err := json.Unmarshal(val, &w); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return &w, nil
}

// Set はイベントの時間帯をキャッシュに保存する
func (c *WindowCache) Set(ctx context.Context, eventID string, w *CachedWindow, ttl time.Duration) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("キャッシュの変換に失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.windowKey(eventID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はイベントの時間帯キャッシュを無効化する
func (c *WindowCache) Invalidate(ctx context.Context, eventID string) error {
	if err := c.client.Del(ctx, c.windowKey(eventID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *WindowCache) windowKey(eventID string) string {
	return fmt.Sprintf("events:window:%s", eventID)
}
