package timepolicy_test

import (
	"testing"

	"github.com/purpleclay/tidemark/internal/timepolicy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "utc literal", spec: "UTC"},
		{name: "utc lowercase", spec: "utc", wantErr: true},
		{name: "empty defaults to utc", spec: ""},
		{name: "positive offset", spec: "+05:30"},
		{name: "negative offset", spec: "-08:00"},
		{name: "max hour", spec: "+14:00"},
		{name: "missing colon", spec: "+0500", wantErr: true},
		{name: "hour out of range", spec: "+15:00", wantErr: true},
		{name: "minute out of range", spec: "+05:60", wantErr: true},
		{name: "garbage", spec: "not-a-timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timepolicy.Parse(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateOfUTC(t *testing.T) {
	p, err := timepolicy.Parse("UTC")
	require.NoError(t, err)

	date := p.DateOf(1704067200) // 2024-01-01T00:00:00Z
	assert.Equal(t, timepolicy.Date{Year: 2024, Month: 1, Day: 1}, date)
}

func TestDateOfShiftsAcrossMidnight(t *testing.T) {
	p, err := timepolicy.Parse("+05:30")
	require.NoError(t, err)

	// 2024-01-01T23:00:00Z + 05:30 rolls into 2024-01-02
	date := p.DateOf(1704150000)
	assert.Equal(t, timepolicy.Date{Year: 2024, Month: 1, Day: 2}, date)
}

func TestDayDelta(t *testing.T) {
	p, err := timepolicy.Parse("UTC")
	require.NoError(t, err)

	anchor := int64(1704067200) // 2024-01-01T00:00:00Z
	sameDay := int64(1704070800) // 2024-01-01T01:00:00Z
	nextDay := int64(1704157200) // 2024-01-02T01:00:00Z

	assert.Equal(t, int64(0), p.DayDelta(anchor, sameDay))
	assert.Equal(t, int64(1), p.DayDelta(anchor, nextDay))
	assert.Equal(t, int64(-1), p.DayDelta(nextDay, anchor))
}
