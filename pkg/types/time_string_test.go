package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "09:00", want: "09:00"},
		{name: "valid evening time", input: "17:30", want: "17:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "12:61", wantErr: true},
		{name: "12h format", input: "09:00 AM", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	ts := TimeString("13:45")
	got, err := ts.At(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 15, 13, 45, 0, 0, time.UTC), got)
}

func TestTimeString_At_Invalid(t *testing.T) {
	ts := TimeString("not a time")
	_, err := ts.At(time.Now())
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("11:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	// Лексикографическое сравнение корректно благодаря ведущим нулям
	assert.True(t, TimeString("09:30").IsBefore("10:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("11:00")))
	assert.Equal(t, TimeString("11:00"), ts)

	assert.Error(t, ts.Scan(42))
}
