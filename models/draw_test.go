package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "010****5678", MaskPhone("01012345678"))
	assert.Equal(t, "012****8901", MaskPhone("01234568901"))

	assert.Equal(t, "***", MaskPhone("0101234567"))
	assert.Equal(t, "***", MaskPhone(""))
	assert.Equal(t, "***", MaskPhone("010123456789"))
}

func TestDrawWinnerJSONNeverLeaksRawPhone(t *testing.T) {
	w := DrawWinner{
		ID:       1,
		Name:     "أحمد محمد",
		Phone:    "01012345678",
		Prize:    "مكتبة كاملة",
		DrawDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(w)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "01012345678")
	assert.Contains(t, string(data), "010****5678")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "010****5678", out["phone"])
	assert.Equal(t, "أحمد محمد", out["name"])
}
