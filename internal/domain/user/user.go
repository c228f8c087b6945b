package user

import "errors"

// Kind はユーザーの種別を表す
// 継承階層の代わりにタグ付きの参照で種別を判定する
type Kind string

const (
	KindVenue       Kind = "venue"
	KindArtist      Kind = "artist"
	KindBand        Kind = "band"
	KindParticipant Kind = "participant"
)

// User ドメインのエラー定義
var (
	ErrUserIDRequired = errors.New("ユーザーIDは必須です")
	ErrInvalidKind    = errors.New("不正なユーザー種別です")
)

// Ref はイベント集約から参照されるユーザーの識別情報を表す
// 集約はこの参照を読み取るだけで、ユーザー自体を変更しない
type Ref struct {
	Kind     Kind
	ID       string
	Name     string
	Location string // 会場の場合のみ設定される（イベントのロケーションのフォールバック）
}

// IsPerformer は出演者（アーティストまたはバンド）かを返す
func (r Ref) IsPerformer() bool {
	return r.Kind == KindArtist || r.Kind == KindBand
}

// IsVenue は会場かを返す
func (r Ref) IsVenue() bool {
	return r.Kind == KindVenue
}

// IsParticipant は参加者かを返す
func (r Ref) IsParticipant() bool {
	return r.Kind == KindParticipant
}

// Validate は参照の検証を行う
func (r Ref) Validate() error {
	if r.ID == "" {
		return ErrUserIDRequired
	}
	switch r.Kind {
	case KindVenue, KindArtist, KindBand, KindParticipant:
		return nil
	default:
		return ErrInvalidKind
	}
}

// ParseKind は文字列からKindを生成する
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindVenue, KindArtist, KindBand, KindParticipant:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}
