package gig

import "errors"

// Gig ドメインのエラー定義
var (
	ErrGigNotFound        = errors.New("演奏枠が見つかりません")
	ErrActRequired        = errors.New("出演者は1名以上必要です")
	ErrActNotPerformer    = errors.New("出演者にはアーティストまたはバンドのみ指定できます")
	ErrDuplicatePerformer = errors.New("同じ出演者を重複して指定できません")
	ErrInvalidGigTime     = errors.New("終了時刻は開始時刻より後である必要があります")
)
