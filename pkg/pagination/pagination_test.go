package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+50))
	assert.Equal(t, 11, LimitWithBuffer(10))
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2024, 4, 7, 15, 30, 0, 123, time.UTC),
		ID:        uuid.MustParse("0190c9a4-7a35-7c1e-8f3a-2d5b6c7d8e9f"),
	}
	parsed, err := ParseCursor(EncodeCursor(original))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, parsed.CreatedAt.Equal(original.CreatedAt))
	assert.Equal(t, original.ID, parsed.ID)
}

func TestParseCursorErrors(t *testing.T) {
	cur, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, cur)

	for _, bad := range []string{"***", "bm8tc2VwYXJhdG9y", "eHx5"} {
		_, err := ParseCursor(bad)
		assert.Error(t, err, bad)
	}
}

func TestTrim(t *testing.T) {
	rows := []int{1, 2, 3}
	page, more := Trim(rows, 2)
	assert.Equal(t, []int{1, 2}, page)
	assert.True(t, more)

	page, more = Trim(rows, 5)
	assert.Equal(t, rows, page)
	assert.False(t, more)
}
