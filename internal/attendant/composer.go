// Package attendant implements the chat pipeline: classify the question,
// compose a factual draft from the catalog snapshot, then rewrite the
// draft in the house voice.
package attendant

import (
	"fmt"
	"strings"
	"time"

	"bistro-attendant/internal/catalog"
	"bistro-attendant/internal/common/metrics"
	"bistro-attendant/internal/models"
	"bistro-attendant/internal/schedule"
)

const reservationPrompt = "Posso te enviar o link de reserva?"

const notFoundMessage = "Hmm, não encontrei essa informação por aqui. Pode perguntar de outro jeito?"

// menuTerms mark questions about the menu itself; combined with a generic
// topic they suppress schedule blocks so the answer is just the menu link.
var menuTerms = []string{"cardapio", "menu", "valores", "precos"}

// overviewFactNames selects the informational entries surfaced in the
// general overview: the menu link, reservations and the address.
var overviewFactNames = map[string]bool{
	"cardapio": true,
	"reserva":  true,
	"endereco": true,
}

// Composer turns a classified intent into a factual draft answer using
// only the catalog snapshot. It never calls external services.
type Composer struct {
	reservationLink string
}

func NewComposer(reservationLink string) *Composer {
	return &Composer{reservationLink: reservationLink}
}

// Compose walks the decision table in order and builds the draft for the
// first matching branch. A generic topic routes like no topic at all, so
// "o que tem na sexta?" lands on the period branch:
//
//  1. generic menu question -> the menu notes alone, no schedule blocks
//  2. period and topic      -> day summaries, then the program's agenda
//  3. period only           -> hours and programs per resolved day
//  4. topic only            -> program agenda or informational notes
//  5. otherwise             -> overview of hours, programs and key facts
//
// The reservation invitation is appended once, never on the overview
// branch, and only when the draft does not already carry the link.
func (c *Composer) Compose(snap *catalog.Snapshot, intent models.ClassifiedIntent, now time.Time) string {
	if block, ok := c.menuQuestion(snap, intent); ok {
		metrics.CompositionBranchTotal.WithLabelValues("menu_link").Inc()
		return block
	}

	hasPeriod := strings.TrimSpace(intent.PeriodExpression) != "" && !intent.PeriodIsGeneric
	hasTopic := strings.TrimSpace(intent.Topic) != "" && !intent.TopicIsGeneric

	switch {
	case hasPeriod && hasTopic:
		metrics.CompositionBranchTotal.WithLabelValues("period_and_topic").Inc()
		return c.appendReservationPrompt(c.composePeriodAndTopic(snap, intent, now))
	case hasPeriod:
		metrics.CompositionBranchTotal.WithLabelValues("period_only").Inc()
		return c.appendReservationPrompt(c.composePeriodOnly(snap, intent, now))
	case hasTopic:
		metrics.CompositionBranchTotal.WithLabelValues("topic_only").Inc()
		return c.appendReservationPrompt(c.composeTopicOnly(snap, intent))
	default:
		metrics.CompositionBranchTotal.WithLabelValues("general_overview").Inc()
		return c.composeOverview(snap)
	}
}

func (c *Composer) appendReservationPrompt(draft string) string {
	if strings.Contains(draft, c.reservationLink) ||
		strings.Contains(draft, "linktr.ee/bitrodacasa") {
		return draft
	}
	return draft + "\n\n" + reservationPrompt
}

// composeOverview summarizes the whole operation: the weekly hours, one
// line per program, and the key informational notes with their links.
func (c *Composer) composeOverview(snap *catalog.Snapshot) string {
	var b strings.Builder

	b.WriteString("Nossos horários de funcionamento:\n")
	for _, day := range snap.WeeklyHours {
		fmt.Fprintf(&b, "- %s: %s\n", capitalize(day.Weekday), formatRanges(day.Ranges))
	}

	if len(snap.Programs) > 0 {
		b.WriteString("\nNossos programas:\n")
		for _, p := range snap.Programs {
			parts := make([]string, 0, len(p.Schedule))
			for _, day := range p.Schedule {
				parts = append(parts, fmt.Sprintf("%s %s", day.Weekday,
					c.programRanges(snap, p, day.Weekday)))
			}
			line := fmt.Sprintf("- %s: %s.", capitalize(p.Names[0]), strings.Join(parts, "; "))
			if p.Limited {
				line += " Por tempo limitado."
			}
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	var notes []string
	for _, fact := range snap.InfoFacts {
		if len(fact.Names) > 0 && overviewFactNames[schedule.Normalize(fact.Names[0])] {
			notes = append(notes, fact.Notes...)
		}
	}
	if len(notes) > 0 {
		b.WriteString("\n" + strings.Join(notes, "\n"))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (c *Composer) composePeriodOnly(snap *catalog.Snapshot, intent models.ClassifiedIntent, now time.Time) string {
	period := schedule.ResolvePeriod(intent.PeriodExpression, now, intent.PeriodIsRelative)
	return c.periodBlock(snap, intent, period, now)
}

// periodBlock renders, per resolved day, the general hours followed by
// every program running that day, then the open-now line when the
// question is about the current moment.
func (c *Composer) periodBlock(snap *catalog.Snapshot, intent models.ClassifiedIntent, period models.ResolvedPeriod, now time.Time) string {
	var b strings.Builder
	for _, label := range period.WeekdayLabels {
		hours := snap.HoursFor(label)
		if len(hours) == 0 {
			fmt.Fprintf(&b, "No %s não abrimos.\n", label)
			continue
		}
		fmt.Fprintf(&b, "No %s funcionamos %s.\n", label, formatRanges(hours))

		for _, p := range snap.Programs {
			if len(p.ScheduleFor(label)) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s\n", c.programLine(snap, p, label))
		}
	}

	if status := c.openStatus(snap, intent, period, now); status != "" {
		b.WriteString(status + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// programLine is the one-line rendering of a program on a given day.
func (c *Composer) programLine(snap *catalog.Snapshot, program models.Program, weekday string) string {
	line := fmt.Sprintf("- %s: %s.", capitalize(program.Names[0]),
		c.programRanges(snap, program, weekday))
	if program.Description != "" {
		line += " " + program.Description
	}
	if program.Limited {
		line += " Por tempo limitado."
	}
	return line
}

func (c *Composer) composeTopicOnly(snap *catalog.Snapshot, intent models.ClassifiedIntent) string {
	// A topic can hit both catalogs; both blocks go out, program first.
	var blocks []string
	if program, ok := schedule.FindProgram(snap.Programs, intent.Topic); ok {
		blocks = append(blocks, c.programAgenda(snap, program, nil))
	}
	if fact, ok := schedule.FindInfoFact(snap.InfoFacts, intent.Topic); ok {
		blocks = append(blocks, strings.Join(fact.Notes, "\n"))
	}
	if len(blocks) == 0 {
		return notFoundMessage
	}
	return strings.Join(blocks, "\n")
}

// composePeriodAndTopic opens with the resolved days' summaries, then the
// matched program's full agenda with "não acontece" marks for requested
// days it skips, then any matched informational notes.
func (c *Composer) composePeriodAndTopic(snap *catalog.Snapshot, intent models.ClassifiedIntent, now time.Time) string {
	period := schedule.ResolvePeriod(intent.PeriodExpression, now, intent.PeriodIsRelative)

	sections := []string{c.periodBlock(snap, intent, period, now)}
	matched := false

	if program, ok := schedule.FindProgram(snap.Programs, intent.Topic); ok {
		matched = true
		sections = append(sections, c.programAgenda(snap, program, &period))
	}
	if fact, ok := schedule.FindInfoFact(snap.InfoFacts, intent.Topic); ok {
		matched = true
		sections = append(sections, strings.Join(fact.Notes, "\n"))
	}
	if !matched {
		sections = append(sections, notFoundMessage)
	}
	return strings.Join(sections, "\n")
}

// menuQuestion handles the menu special case: a generic menu question is
// answered with the menu link alone, never with schedule blocks.
func (c *Composer) menuQuestion(snap *catalog.Snapshot, intent models.ClassifiedIntent) (string, bool) {
	if !intent.TopicIsGeneric {
		return "", false
	}
	topic := schedule.Normalize(intent.Topic)
	isMenu := false
	for _, term := range menuTerms {
		if strings.Contains(topic, term) {
			isMenu = true
			break
		}
	}
	if !isMenu {
		return "", false
	}
	if fact, ok := schedule.FindInfoFact(snap.InfoFacts, intent.Topic); ok {
		return strings.Join(fact.Notes, "\n"), true
	}
	return "", false
}

// programAgenda renders a program's description and full weekly agenda.
// With a period it first marks the requested days on which the program
// does not happen.
func (c *Composer) programAgenda(snap *catalog.Snapshot, program models.Program, period *models.ResolvedPeriod) string {
	name := capitalize(program.Names[0])

	var b strings.Builder
	if program.Description != "" {
		b.WriteString(program.Description + "\n")
	}
	if program.Limited {
		b.WriteString("Por tempo limitado.\n")
	}

	if period != nil {
		for _, label := range period.WeekdayLabels {
			if len(program.ScheduleFor(label)) == 0 {
				fmt.Fprintf(&b, "%s não acontece no %s.\n", name, label)
			}
		}
	}

	for _, day := range program.Schedule {
		fmt.Fprintf(&b, "%s no %s: %s.\n", name, day.Weekday,
			c.programRanges(snap, program, day.Weekday))
	}
	return strings.TrimRight(b.String(), "\n")
}

// programRanges renders a program's windows on one day. The full-menu
// program has open-ended starts in the catalog; its real windows are the
// day's hours minus the breakfast service, so guests see a closing time.
func (c *Composer) programRanges(snap *catalog.Snapshot, program models.Program, weekday string) string {
	ranges := program.ScheduleFor(weekday)
	if isFullMenu(program) {
		if derived := fullMenuWindows(snap, weekday); len(derived) > 0 {
			ranges = derived
		}
	}
	return formatRanges(ranges)
}

func isFullMenu(program models.Program) bool {
	for _, name := range program.Names {
		if schedule.Normalize(name) == "menu completo" {
			return true
		}
	}
	return false
}

// fullMenuWindows subtracts the breakfast windows from the day's general
// hours, which is why the full menu starts at 13:00 on weekends.
func fullMenuWindows(snap *catalog.Snapshot, weekday string) []models.TimeRange {
	hours := snap.HoursFor(weekday)
	if len(hours) == 0 {
		return nil
	}
	var breakfast []models.TimeRange
	for _, p := range snap.Programs {
		for _, name := range p.Names {
			if schedule.Normalize(name) == "cafe da manha" {
				breakfast = p.ScheduleFor(weekday)
			}
		}
	}
	if len(breakfast) == 0 {
		return hours
	}
	return schedule.Subtract(hours, breakfast)
}

// openStatus adds an open-right-now line when the question is about the
// current moment. When the restaurant is already closed for the day it
// points at tomorrow's first opening.
func (c *Composer) openStatus(snap *catalog.Snapshot, intent models.ClassifiedIntent, period models.ResolvedPeriod, now time.Time) string {
	if !refersToNow(intent) {
		return ""
	}
	if len(period.WeekdayIndices) != 1 || period.WeekdayIndices[0] != int(now.Weekday()) {
		return ""
	}

	at := now.Format("15:04")
	today := snap.HoursFor(models.WeekdayNames[now.Weekday()])

	if schedule.IsWithin(today, at) {
		if closing, ok := schedule.CurrentClosing(today, at); ok {
			return fmt.Sprintf("Estamos abertos agora! Hoje fechamos às %s.", closing)
		}
		return "Estamos abertos agora!"
	}
	if opening, ok := schedule.NextOpening(today, at); ok {
		return fmt.Sprintf("Ainda não abrimos. Hoje abrimos às %s.", opening)
	}

	tomorrow := snap.HoursFor(models.WeekdayNames[now.AddDate(0, 0, 1).Weekday()])
	if len(tomorrow) > 0 {
		return fmt.Sprintf("Já encerramos por hoje. Abrimos amanhã às %s.", tomorrow[0].OpensAt)
	}
	return "Já encerramos por hoje."
}

// refersToNow reports whether the answer depends on the current moment,
// which also makes it unsafe to cache.
func refersToNow(intent models.ClassifiedIntent) bool {
	text := schedule.Normalize(intent.PeriodExpression)
	return intent.PeriodIsRelative ||
		strings.Contains(text, "hoje") || strings.Contains(text, "agora")
}

// formatRanges renders windows as "das 12:00 às 16:00 e das 18:00 às
// 23:00"; open-ended windows render as "a partir das 19:00".
func formatRanges(ranges []models.TimeRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r.OpenEnded() {
			parts = append(parts, fmt.Sprintf("a partir das %s", r.OpensAt))
			continue
		}
		parts = append(parts, fmt.Sprintf("das %s às %s", r.OpensAt, r.ClosesAt))
	}
	return strings.Join(parts, " e ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
