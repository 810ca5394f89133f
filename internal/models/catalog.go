// internal/models/catalog.go
package models

// Weekday indices follow time.Weekday: 0=Sunday .. 6=Saturday.
// Labels are the lowercase Portuguese day names used across the catalog.
var WeekdayNames = [7]string{
	"domingo",
	"segunda",
	"terça",
	"quarta",
	"quinta",
	"sexta",
	"sábado",
}

// TimeRange is a single service window in "HH:MM" wall-clock time.
// ClosesAt may be empty for open-ended windows ("a partir das 19:00").
type TimeRange struct {
	OpensAt  string `json:"inicio"`
	ClosesAt string `json:"fim,omitempty"`
}

// OpenEnded reports whether the range has no declared closing time.
func (r TimeRange) OpenEnded() bool {
	return r.ClosesAt == ""
}

// DayHours holds the windows for one weekday, keyed by its canonical name.
type DayHours struct {
	Weekday string      `json:"nome"`
	Ranges  []TimeRange `json:"horarios"`
}

// Program is a recurring named activity (executive menu, fondue, live music).
// Names[0] is the canonical display name; the rest are matchable synonyms.
type Program struct {
	Names       []string   `json:"nomes"`
	Schedule    []DayHours `json:"horarios"`
	Description string     `json:"descricao"`
	Limited     bool       `json:"limitado,omitempty"`
}

// ScheduleFor returns the program's windows on the named weekday, or nil.
func (p Program) ScheduleFor(weekday string) []TimeRange {
	for _, d := range p.Schedule {
		if d.Weekday == weekday {
			return d.Ranges
		}
	}
	return nil
}

// InfoFact is a static informational entry (address, payment methods, pet
// policy). Names are matchable synonyms, Notes the statements to surface.
type InfoFact struct {
	Names []string `json:"nomes"`
	Notes []string `json:"observacoes"`
}

// ClassifiedIntent is the slot set extracted from one user utterance.
// Field tags mirror the extraction function schema; produced once per
// request and never persisted.
type ClassifiedIntent struct {
	PeriodExpression string `json:"data_ou_periodo"`
	PeriodIsGeneric  bool   `json:"periodo_generico"`
	Topic            string `json:"informacao"`
	TopicIsGeneric   bool   `json:"informacao_generica"`
	GeneralOverview  bool   `json:"visao_geral"`
	PeriodIsRelative bool   `json:"periodo_referencial"`
}

// ResolvedPeriod is the concrete day list a period expression resolved to.
// Indices and Labels are index-aligned and never empty.
type ResolvedPeriod struct {
	WeekdayIndices []int
	WeekdayLabels  []string
}
