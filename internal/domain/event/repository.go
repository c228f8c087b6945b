package event

import (
	"context"
	"time"

	"github.com/Laustrup/go-gig-booking/internal/domain/transaction"
)

// Repository はイベント集約リポジトリのインターフェース
// 集約は演奏枠・承認チケット・参加を含めて丸ごと読み書きする
type Repository interface {
	// Create は新しいイベント集約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, event *Event) error

	// GetByID はIDからイベント集約を取得する（子コレクションを含む）
	GetByID(ctx context.Context, id string) (*Event, error)

	// List はイベント一覧を取得する（子コレクションを含まないサマリー）
	List(ctx context.Context, limit, offset int) ([]*Event, error)

	// Save はイベント集約を保存する（楽観的ロック、トランザクション必須）
	Save(ctx context.Context, tx transaction.Tx, event *Event) error

	// Delete はイベント集約を削除する
	Delete(ctx context.Context, id string) error

	// DeclineStaleRequests は指定期間を超えて未決定のままの承認チケットを一括拒否する
	DeclineStaleRequests(ctx context.Context, olderThan time.Duration) (int, error)

	// CountPendingRequests は全イベントの未決定の承認チケット数を返す
	CountPendingRequests(ctx context.Context) (int, error)
}
