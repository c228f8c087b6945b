package transaction

import "context"

// Tx はイベント集約の保存をまとめる単位を表すインターフェース
// 集約本体と子コレクション（演奏枠・承認チケット・参加）の書き込みは
// すべて同一のTxの中で行い、途中で失敗したら全体を巻き戻す
// ドメイン層がインフラ層（sqlx等）に依存しないようにするための抽象化
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}
