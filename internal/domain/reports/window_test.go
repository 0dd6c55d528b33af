package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kolkata = mustLoad("Asia/Kolkata")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func TestToday(t *testing.T) {
	// Wednesday afternoon
	ref := time.Date(2026, 3, 18, 15, 30, 0, 0, kolkata)

	w := Today(ref)

	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, kolkata), w.From)
	assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, kolkata), w.To)
	assert.True(t, w.Contains(ref))
	assert.False(t, w.Contains(w.To), "upper bound is exclusive")
	assert.True(t, w.Contains(w.From), "lower bound is inclusive")
}

func TestYesterday(t *testing.T) {
	ref := time.Date(2026, 3, 1, 9, 0, 0, 0, kolkata)

	w := Yesterday(ref)

	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, kolkata), w.From)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, kolkata), w.To)
}

func TestThisWeek_StartsMonday(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
	}{
		{"monday", time.Date(2026, 3, 16, 0, 0, 0, 0, kolkata)},
		{"wednesday", time.Date(2026, 3, 18, 12, 0, 0, 0, kolkata)},
		{"sunday", time.Date(2026, 3, 22, 23, 59, 0, 0, kolkata)},
	}

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, kolkata)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ThisWeek(tt.ref)
			assert.Equal(t, monday, w.From)
			assert.Equal(t, monday.AddDate(0, 0, 7), w.To)
			assert.True(t, w.Contains(tt.ref))
		})
	}
}

func TestThisMonth(t *testing.T) {
	ref := time.Date(2026, 2, 14, 10, 0, 0, 0, kolkata)

	w := ThisMonth(ref)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, kolkata), w.From)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, kolkata), w.To)
}

func TestLastMonth_AcrossYearBoundary(t *testing.T) {
	ref := time.Date(2026, 1, 5, 10, 0, 0, 0, kolkata)

	w := LastMonth(ref)

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, kolkata), w.From)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, kolkata), w.To)
}

func TestAllTime(t *testing.T) {
	ref := time.Date(2026, 3, 18, 12, 0, 0, 0, kolkata)

	w := AllTime(ref)

	assert.True(t, w.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(ref))
}

func TestWindows_KeysAndDisjointDays(t *testing.T) {
	ref := time.Date(2026, 3, 18, 12, 0, 0, 0, kolkata)

	windows := Windows(ref)

	for _, key := range []string{"today", "yesterday", "thisWeek", "thisMonth", "lastMonth", "allTime"} {
		require.Contains(t, windows, key)
	}

	assert.Equal(t, windows["yesterday"].To, windows["today"].From)
	assert.Equal(t, windows["lastMonth"].To, windows["thisMonth"].From)
}

func TestWindows_RespectLocation(t *testing.T) {
	// 20:00 UTC on March 17 is already March 18 in Kolkata; the
	// window must be computed in the requested zone, not UTC.
	utcRef := time.Date(2026, 3, 17, 20, 0, 0, 0, time.UTC)
	localRef := utcRef.In(kolkata)

	w := Today(localRef)

	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, kolkata), w.From)
	assert.False(t, w.Contains(time.Date(2026, 3, 17, 18, 0, 0, 0, time.UTC)))
}
