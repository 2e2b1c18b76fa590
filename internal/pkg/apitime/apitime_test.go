package apitime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NaiveTimestampIsUTC(t *testing.T) {
	got, err := Parse("2024-03-04T09:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC), got)
}

func TestParse_FractionalSeconds(t *testing.T) {
	got, err := Parse("2024-03-04T09:30:00.123456")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 9, got.Hour())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not-a-time")
	assert.Error(t, err)
}

func TestFormatQuery_TruncatedToSeconds(t *testing.T) {
	ts := time.Date(2024, 3, 4, 23, 59, 59, 999000000, time.UTC)
	assert.Equal(t, "2024-03-04T23:59:59", FormatQuery(ts))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 3, 4, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2024-03-04", FormatDate(ts))
}
