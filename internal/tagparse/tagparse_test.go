package tagparse_test

import (
	"testing"

	"github.com/purpleclay/tidemark/internal/tagparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		prefix  string
		wantVal uint64
		wantOK  bool
	}{
		{name: "simple", tag: "v1", prefix: "v", wantVal: 1, wantOK: true},
		{name: "multi digit", tag: "v142", prefix: "v", wantVal: 142, wantOK: true},
		{name: "leading zero accepted", tag: "v01", prefix: "v", wantVal: 1, wantOK: true},
		{name: "zero value", tag: "v0", prefix: "v", wantVal: 0, wantOK: true},
		{name: "custom prefix", tag: "release-9", prefix: "release-", wantVal: 9, wantOK: true},
		{name: "wrong prefix", tag: "x1", prefix: "v", wantOK: false},
		{name: "no digits", tag: "v", prefix: "v", wantOK: false},
		{name: "non digit suffix", tag: "v1.2.3", prefix: "v", wantOK: false},
		{name: "trailing garbage", tag: "v1a", prefix: "v", wantOK: false},
		{name: "empty", tag: "", prefix: "v", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := tagparse.Parse(tt.tag, tt.prefix)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantVal, val)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	val, ok := tagparse.Parse("v01", "v")
	require.True(t, ok)
	require.Equal(t, uint64(1), val)

	formatted := tagparse.Format("v", val)
	assert.Equal(t, "v1", formatted)

	// The canonical form must itself be accepted and map to the same
	// anchor value
	roundTripVal, ok := tagparse.Parse(formatted, "v")
	require.True(t, ok)
	assert.Equal(t, val, roundTripVal)
}
