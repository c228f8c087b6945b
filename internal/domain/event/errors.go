package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound    = errors.New("イベントが見つかりません")
	ErrTitleRequired    = errors.New("イベント名は必須です")
	ErrInvalidTimeRange = errors.New("イベントの時間帯が不正です")
	ErrNotVenue         = errors.New("会場以外のユーザーは会場に設定できません")
	ErrPostNotFound     = errors.New("投稿が見つかりません")
	ErrAlbumNotFound    = errors.New("アルバムが見つかりません")

	ErrOptimisticLockConflict = errors.New("楽観的ロックの競合が発生しました")
)
