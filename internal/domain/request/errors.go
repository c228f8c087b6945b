package request

import "errors"

// Request ドメインのエラー定義
var (
	ErrRequestNotFound        = errors.New("承認チケットが見つかりません")
	ErrRequestAlreadyApproved = errors.New("承認チケットは既に承認されています")
	ErrRequestAlreadyDeclined = errors.New("承認チケットは既に拒否されています")
	ErrEventIDRequired        = errors.New("イベントIDは必須です")
	ErrUserNotRequirable      = errors.New("承認チケットの対象は出演者または会場である必要があります")
)
