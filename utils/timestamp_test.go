package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestampSecondsEpoch(t *testing.T) {
	assert.Equal(t, "1/1/1970, 00:00", FormatTimestamp(SecondsStamp{Seconds: 0}))
}

func TestFormatTimestampStoreShape(t *testing.T) {
	ts := StoreTimestamp{Seconds: 86400, Nanos: 500}
	assert.Equal(t, "1/2/1970, 00:00", FormatTimestamp(ts))
}

func TestFormatTimestampNativeTime(t *testing.T) {
	at := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "3/9/2024, 18:30", FormatTimestamp(at))
}

func TestFormatTimestampISOString(t *testing.T) {
	assert.Equal(t, "3/9/2024, 18:30", FormatTimestamp("2024-03-09T18:30:00Z"))
	assert.Equal(t, "3/9/2024, 00:00", FormatTimestamp("2024-03-09"))
}

func TestFormatTimestampUnrecognized(t *testing.T) {
	assert.Equal(t, "Invalid date", FormatTimestamp(42))
	assert.Equal(t, "Invalid date", FormatTimestamp(nil))
	assert.Equal(t, "Invalid date", FormatTimestamp("not a date"))
}

func TestClassifyTimestampKinds(t *testing.T) {
	assert.Equal(t, TimeSeconds, ClassifyTimestamp(SecondsStamp{}).Kind)
	assert.Equal(t, TimeStore, ClassifyTimestamp(StoreTimestamp{}).Kind)
	assert.Equal(t, TimeNative, ClassifyTimestamp(time.Now()).Kind)
	assert.Equal(t, TimeISO, ClassifyTimestamp("2024-03-09").Kind)
	assert.Equal(t, TimeUnrecognized, ClassifyTimestamp(3.14).Kind)
}

func TestReviewTimeTimeZeroWhenUnrecognized(t *testing.T) {
	assert.True(t, ClassifyTimestamp(42).Time().IsZero())
}
