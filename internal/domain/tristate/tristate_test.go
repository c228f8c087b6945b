package tristate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Predicates(t *testing.T) {
	assert.True(t, True.IsTrue())
	assert.False(t, True.IsFalse())
	assert.True(t, False.IsFalse())
	assert.False(t, False.IsTrue())
	assert.False(t, Undefined.IsTrue())
	assert.False(t, Undefined.IsFalse())

	assert.True(t, True.IsDecided())
	assert.True(t, False.IsDecided())
	assert.False(t, Undefined.IsDecided())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
		wantErr  bool
	}{
		{name: "trueを解析", input: "true", expected: True},
		{name: "falseを解析", input: "false", expected: False},
		{name: "undefinedを解析", input: "undefined", expected: Undefined},
		{name: "空文字列はundefined", input: "", expected: Undefined},
		{name: "不正な値はエラー", input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestFromBool(t *testing.T) {
	assert.Equal(t, True, FromBool(true))
	assert.Equal(t, False, FromBool(false))
}

func TestOrUndefined(t *testing.T) {
	assert.Equal(t, Undefined, OrUndefined(""))
	assert.Equal(t, True, OrUndefined(True))
}
