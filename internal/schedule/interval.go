package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bistro-attendant/internal/models"
)

// endOfDay stands in for a missing closing time when comparing minutes.
const endOfDay = 24 * 60

// ParseClock converts "HH:MM" to minutes since midnight. Malformed input
// returns -1; catalog data is validated at seed time, user-facing code
// treats -1 as "not within".
func ParseClock(s string) int {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return -1
	}
	hours, err1 := strconv.Atoi(h)
	mins, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return -1
	}
	return hours*60 + mins
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func rangeBounds(r models.TimeRange) (int, int) {
	start := ParseClock(r.OpensAt)
	end := endOfDay
	if !r.OpenEnded() {
		end = ParseClock(r.ClosesAt)
	}
	return start, end
}

// IsWithin reports whether the wall-clock time falls inside any range.
// Open-ended ranges run until midnight. Starts are inclusive, ends
// exclusive.
func IsWithin(ranges []models.TimeRange, at string) bool {
	t := ParseClock(at)
	if t < 0 {
		return false
	}
	for _, r := range ranges {
		start, end := rangeBounds(r)
		if start < 0 {
			continue
		}
		if t >= start && t < end {
			return true
		}
	}
	return false
}

// NextOpening returns the earliest opening strictly after the given time,
// or false when the day has no further opening.
func NextOpening(ranges []models.TimeRange, at string) (string, bool) {
	t := ParseClock(at)
	best := -1
	for _, r := range ranges {
		start := ParseClock(r.OpensAt)
		if start > t && (best < 0 || start < best) {
			best = start
		}
	}
	if best < 0 {
		return "", false
	}
	return formatClock(best), true
}

// CurrentClosing returns the closing time of the range containing the
// given time. Open-ended ranges report no closing.
func CurrentClosing(ranges []models.TimeRange, at string) (string, bool) {
	t := ParseClock(at)
	if t < 0 {
		return "", false
	}
	for _, r := range ranges {
		start, end := rangeBounds(r)
		if start < 0 || t < start || t >= end {
			continue
		}
		if r.OpenEnded() {
			return "", false
		}
		return r.ClosesAt, true
	}
	return "", false
}

// Subtract removes the cut windows from the base windows, splitting ranges
// where a cut lands in the middle. The result preserves base order, stays
// non-overlapping when the base was, and subtracting the same cuts again
// changes nothing.
func Subtract(base, cuts []models.TimeRange) []models.TimeRange {
	type span struct {
		start, end int
		openEnded  bool
	}

	spans := make([]span, 0, len(base))
	for _, r := range base {
		start, end := rangeBounds(r)
		if start < 0 || start >= end {
			continue
		}
		spans = append(spans, span{start: start, end: end, openEnded: r.OpenEnded()})
	}

	for _, cut := range cuts {
		cs, ce := rangeBounds(cut)
		if cs < 0 || cs >= ce {
			continue
		}
		next := spans[:0:0]
		for _, s := range spans {
			if ce <= s.start || cs >= s.end {
				next = append(next, s)
				continue
			}
			if s.start < cs {
				next = append(next, span{start: s.start, end: cs})
			}
			if ce < s.end {
				next = append(next, span{start: ce, end: s.end, openEnded: s.openEnded})
			}
		}
		spans = next
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	out := make([]models.TimeRange, 0, len(spans))
	for _, s := range spans {
		r := models.TimeRange{OpensAt: formatClock(s.start)}
		if !s.openEnded || s.end != endOfDay {
			r.ClosesAt = formatClock(s.end)
		}
		out = append(out, r)
	}
	return out
}
