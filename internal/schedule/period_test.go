package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro-attendant/internal/models"
)

// Wednesday in the business timezone.
var wednesday = time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

func TestResolvePeriod_WeekdayNames(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		expected   []int
	}{
		{"full name", "quarta-feira", []int{3}},
		{"spaced suffix", "sexta feira", []int{5}},
		{"accented", "sábado", []int{6}},
		{"unaccented", "sabado", []int{6}},
		{"abbreviation", "qua", []int{3}},
		{"ordinal", "2a", []int{1}},
		{"ordinal saturday", "7a", []int{6}},
		{"with preposition", "no domingo", []int{0}},
		{"multiple days", "quinta e sexta", []int{4, 5}},
		{"duplicates collapse", "sexta, sexta-feira", []int{5}},
		{"order of appearance", "domingo ou sabado", []int{0, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePeriod(tt.expression, wednesday, false)
			assert.Equal(t, tt.expected, got.WeekdayIndices)
			require.Len(t, got.WeekdayLabels, len(tt.expected))
			for i, idx := range tt.expected {
				assert.Equal(t, models.WeekdayNames[idx], got.WeekdayLabels[i])
			}
		})
	}
}

func TestResolvePeriod_Weekend(t *testing.T) {
	for _, expr := range []string{"fim de semana", "final de semana", "no fds"} {
		got := ResolvePeriod(expr, wednesday, false)
		assert.Equal(t, []int{6, 0}, got.WeekdayIndices, expr)
		assert.Equal(t, []string{"sábado", "domingo"}, got.WeekdayLabels, expr)
	}
}

func TestResolvePeriod_RelativeExpressions(t *testing.T) {
	tests := []struct {
		expression string
		expected   int
	}{
		{"hoje", 3},
		{"agora", 3},
		{"amanhã", 4},
		{"amanha", 4},
		{"depois de amanhã", 5},
	}
	for _, tt := range tests {
		got := ResolvePeriod(tt.expression, wednesday, true)
		assert.Equal(t, []int{tt.expected}, got.WeekdayIndices, tt.expression)
	}
}

func TestResolvePeriod_RelativeTermsNeedTheFlag(t *testing.T) {
	// Without the relative flag, "amanhã" is not an offset; the
	// expression carries no weekday and falls back to today.
	got := ResolvePeriod("amanhã", wednesday, false)
	assert.Equal(t, []int{3}, got.WeekdayIndices)

	got = ResolvePeriod("depois de amanhã", wednesday, false)
	assert.Equal(t, []int{3}, got.WeekdayIndices)
}

func TestResolvePeriod_RelativeWithoutOffsetIsToday(t *testing.T) {
	// A flagged expression that names no offset resolves to today.
	got := ResolvePeriod("agora mesmo", wednesday, true)
	assert.Equal(t, []int{3}, got.WeekdayIndices)
}

func TestResolvePeriod_RelativeWrapsWeek(t *testing.T) {
	saturday := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	got := ResolvePeriod("amanhã", saturday, true)
	assert.Equal(t, []int{0}, got.WeekdayIndices)
	assert.Equal(t, []string{"domingo"}, got.WeekdayLabels)
}

func TestResolvePeriod_FallbackToToday(t *testing.T) {
	for _, expr := range []string{"", "qualquer hora dessas", "semana que vem"} {
		got := ResolvePeriod(expr, wednesday, false)
		assert.Equal(t, []int{3}, got.WeekdayIndices, expr)
		assert.Equal(t, []string{"quarta"}, got.WeekdayLabels, expr)
	}
}
