package earnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCallWindow(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"", "TBD"},
		{"   ", "TBD"},
		{"Before Market Open", "BMO"},
		{"pre-market", "BMO"},
		{"PREMARKET", "BMO"},
		{"time-pre-market", "BMO"},
		{"After Market Close", "AMC"},
		{"post-market", "AMC"},
		{"post market", "AMC"},
		{"time-after-hours", "AMC"},
		{"time-not-supplied", "TBD"},
		{"Time Not Supplied", "TBD"},
		{"tba", "TBD"},
		{"tbd", "TBD"},
		{"During Market Hours", "DMH"},
		// Unknown vocabulary passes through uppercased; upstream
		// phrasing drifts and that is data, not an error.
		{"intraday call", "INTRADAY CALL"},
		{"  lunchtime  ", "LUNCHTIME"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCallWindow(tc.label), "label %q", tc.label)
	}
}
