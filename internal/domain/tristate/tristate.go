package tristate

import "fmt"

// Value は三値の承認状態を表す
// 「未決定」は「拒否」と区別して扱う必要があるため、boolではなくこの型を使う
type Value string

const (
	Undefined Value = "undefined"
	True      Value = "true"
	False     Value = "false"
)

// IsTrue は値がTrueかを返す
func (v Value) IsTrue() bool {
	return v == True
}

// IsFalse は値がFalseかを返す
func (v Value) IsFalse() bool {
	return v == False
}

// IsDecided は値が決定済み（TrueまたはFalse）かを返す
func (v Value) IsDecided() bool {
	return v == True || v == False
}

// OrUndefined は空文字列をUndefinedに正規化する
func OrUndefined(v Value) Value {
	if v == "" {
		return Undefined
	}
	return v
}

// Parse は文字列からValueを生成する
func Parse(s string) (Value, error) {
	switch Value(s) {
	case Undefined, True, False:
		return Value(s), nil
	case "":
		return Undefined, nil
	default:
		return Undefined, fmt.Errorf("不正な三値状態です: %q", s)
	}
}

// FromBool はboolからValueを生成する
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}
