package participation

import "errors"

// Participation ドメインのエラー定義
var (
	ErrParticipationNotFound = errors.New("参加が見つかりません")
	ErrAlreadyParticipating  = errors.New("この参加者は既に参加しています")
	ErrEventIDRequired       = errors.New("イベントIDは必須です")
	ErrInvalidStatus         = errors.New("不正な参加状態です")
)
