package schedule

import (
	"strings"
	"time"

	"bistro-attendant/internal/models"
)

// weekdayAliases maps normalized spellings to time.Weekday indices.
// Ordinals follow the Portuguese convention: segunda is the second day.
var weekdayAliases = map[string]int{
	"domingo": 0, "dom": 0,
	"segunda": 1, "seg": 1, "2a": 1,
	"terca": 2, "ter": 2, "3a": 2,
	"quarta": 3, "qua": 3, "4a": 3,
	"quinta": 4, "qui": 4, "5a": 4,
	"sexta": 5, "sex": 5, "6a": 5,
	"sabado": 6, "sab": 6, "7a": 6,
}

var weekendPhrases = []string{"fim de semana", "final de semana", "fds"}

// droppedWords are fillers stripped before weekday lookup.
var droppedWords = map[string]bool{
	"de": true, "do": true, "da": true, "na": true, "no": true,
	"pra": true, "para": true, "pro": true, "em": true, "e": true,
	"dia": true, "dias": true, "feira": true,
}

// ResolvePeriod turns a free-form period expression into the ordered list
// of weekdays it denotes, evaluated against now in the business timezone.
//
// Rules, first match wins:
//   - empty or unrecognized expressions resolve to today;
//   - weekend phrases resolve to Saturday then Sunday, in that order;
//   - when the classifier marked the expression relative, "amanha" and
//     "depois de amanha" are offsets from now and anything else in the
//     expression ("hoje", "agora", or nothing parseable) means today;
//     without the flag these words are not treated as offsets;
//   - weekday names, three-letter abbreviations and ordinals ("2a".."7a")
//     resolve in order of appearance, duplicates removed.
func ResolvePeriod(expression string, now time.Time, isRelative bool) models.ResolvedPeriod {
	text := Normalize(expression)
	if text == "" {
		return singleDay(int(now.Weekday()))
	}

	for _, phrase := range weekendPhrases {
		if strings.Contains(text, phrase) {
			return models.ResolvedPeriod{
				WeekdayIndices: []int{6, 0},
				WeekdayLabels:  []string{models.WeekdayNames[6], models.WeekdayNames[0]},
			}
		}
	}

	if isRelative {
		switch {
		case strings.Contains(text, "depois de amanha"):
			return singleDay(int(now.AddDate(0, 0, 2).Weekday()))
		case strings.Contains(text, "amanha"):
			return singleDay(int(now.AddDate(0, 0, 1).Weekday()))
		default:
			return singleDay(int(now.Weekday()))
		}
	}

	var indices []int
	seen := map[int]bool{}
	for _, word := range strings.FieldsFunc(text, isWordBreak) {
		word = strings.TrimSuffix(word, "feira")
		word = strings.TrimSuffix(word, "-")
		if droppedWords[word] || word == "" {
			continue
		}
		if idx, ok := weekdayAliases[word]; ok && !seen[idx] {
			indices = append(indices, idx)
			seen[idx] = true
		}
	}
	if len(indices) == 0 {
		return singleDay(int(now.Weekday()))
	}

	labels := make([]string, len(indices))
	for i, idx := range indices {
		labels[i] = models.WeekdayNames[idx]
	}
	return models.ResolvedPeriod{WeekdayIndices: indices, WeekdayLabels: labels}
}

func isWordBreak(r rune) bool {
	return r == ' ' || r == ',' || r == '.' || r == '?' || r == '!' || r == ';'
}

func singleDay(idx int) models.ResolvedPeriod {
	return models.ResolvedPeriod{
		WeekdayIndices: []int{idx},
		WeekdayLabels:  []string{models.WeekdayNames[idx]},
	}
}
