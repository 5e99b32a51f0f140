package query

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sales-insight/internal/model"
)

// Parser turns free-text questions into Params. Relative time phrases are
// resolved against a fixed anchor date, never the wall clock.
//
// Each field has its own detector. Detectors with several cues evaluate an
// ordered rule list and stop at the first match; the order is part of the
// behaviour.
type Parser struct {
	anchor time.Time
}

// NewParser returns a parser anchored at the calendar date of anchor.
func NewParser(anchor time.Time) *Parser {
	y, m, d := anchor.Date()
	return &Parser{anchor: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Anchor is the date "today" resolves to.
func (p *Parser) Anchor() time.Time { return p.anchor }

// Parse never fails: unrecognised phrasing falls back to defaults (Sales, no
// window, no grouping, no filters).
func (p *Parser) Parse(question string) Params {
	q := strings.ToLower(question)
	params := Params{
		Metric:  detectMetric(q),
		GroupBy: detectDimension(q),
		TopN:    detectTopN(q),
		Filters: detectFilters(q),
	}
	if w, ok := p.detectTimeWindow(q); ok {
		params.TimeWindow = &w
	}
	return params
}

func detectMetric(q string) model.Metric {
	if strings.Contains(q, "profit") {
		return model.MetricProfit
	}
	return model.MetricSales
}

// windowRule resolves one time phrase against the anchor.
type windowRule struct {
	phrases []string
	resolve func(q string, anchor time.Time) (TimeWindow, bool)
}

var yearPattern = regexp.MustCompile(`\b(?:(?:in|for)\s+)?((?:19|20)\d{2})\b`)

var windowRules = []windowRule{
	{[]string{"last month"}, func(q string, anchor time.Time) (TimeWindow, bool) {
		if !strings.Contains(q, "last month") {
			return TimeWindow{}, false
		}
		firstOfThis := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		return TimeWindow{Start: firstOfThis.AddDate(0, -1, 0), End: firstOfThis.AddDate(0, 0, -1)}, true
	}},
	{[]string{"this year", "ytd"}, func(q string, anchor time.Time) (TimeWindow, bool) {
		if !strings.Contains(q, "this year") && !strings.Contains(q, "ytd") {
			return TimeWindow{}, false
		}
		return TimeWindow{Start: yearStart(anchor.Year()), End: anchor}, true
	}},
	{[]string{"last year"}, func(q string, anchor time.Time) (TimeWindow, bool) {
		if !strings.Contains(q, "last year") {
			return TimeWindow{}, false
		}
		return CalendarYear(anchor.Year() - 1), true
	}},
	{[]string{"in <year>", "for <year>", "<year>"}, func(q string, _ time.Time) (TimeWindow, bool) {
		m := yearPattern.FindStringSubmatch(q)
		if m == nil {
			return TimeWindow{}, false
		}
		y, _ := strconv.Atoi(m[1])
		return CalendarYear(y), true
	}},
}

func (p *Parser) detectTimeWindow(q string) (TimeWindow, bool) {
	for _, rule := range windowRules {
		if w, ok := rule.resolve(q, p.anchor); ok {
			return w, true
		}
	}
	return TimeWindow{}, false
}

func yearStart(y int) time.Time { return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC) }

// CalendarYear is the window Jan 1 through Dec 31 of y.
func CalendarYear(y int) TimeWindow {
	return TimeWindow{Start: yearStart(y), End: time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)}
}

// dimensionRules are checked in order; the first phrase found wins.
var dimensionRules = []struct {
	phrases []string
	dim     model.Dimension
}{
	{[]string{" by region"}, model.DimRegion},
	{[]string{" by state"}, model.DimState},
	{[]string{" by category", "categories"}, model.DimCategory},
	{[]string{" by product", "sub category"}, model.DimProduct},
	{[]string{" by month", "month-wise", "monthly"}, model.DimMonthName},
}

func detectDimension(q string) model.Dimension {
	for _, rule := range dimensionRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(q, phrase) {
				return rule.dim
			}
		}
	}
	return ""
}

var topNPattern = regexp.MustCompile(`top\s+(\d+)\s+(categories|category|products|product|regions|states)`)

var topNNouns = map[string]model.Dimension{
	"categories": model.DimCategory,
	"category":   model.DimCategory,
	"products":   model.DimProduct,
	"product":    model.DimProduct,
	"regions":    model.DimRegion,
	"states":     model.DimState,
}

func detectTopN(q string) *TopN {
	m := topNPattern.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		n = math.MaxInt
	} else if err != nil {
		return nil
	}
	if n <= 0 {
		return nil
	}
	return &TopN{N: n, Dimension: topNNouns[m[2]]}
}

var (
	stateAbbrPattern   = regexp.MustCompile(`\bin\s+([a-z]{2})\b`)
	statePhrasePattern = regexp.MustCompile(`\bin\s+([a-z][a-z\s\-]*)`)
	categoryCue        = regexp.MustCompile(`\bcategory\s+`)
	phraseRun          = regexp.MustCompile(`^[a-z][a-z\s\-]*`)
	punctuation        = regexp.MustCompile(`[^\w\s\-]`)
)

// phraseStops end a captured filter phrase; they introduce the next clause of
// the question rather than naming a value.
var phraseStops = map[string]bool{
	"in": true, "by": true, "for": true, "during": true, "from": true, "since": true,
	"last": true, "this": true, "ytd": true, "top": true, "and": true, "with": true,
	"category": true, "categories": true, "per": true, "monthly": true,
}

func detectFilters(q string) Filters {
	filters := Filters{}
	if state, ok := detectState(q); ok {
		filters[model.ColState] = state
	}
	// "by category for category x" names the value only in the second match.
	for _, loc := range categoryCue.FindAllStringIndex(q, -1) {
		if words := leadingWords(phraseRun.FindString(q[loc[1]:])); len(words) > 0 {
			filters[model.ColCategory] = titleCase(strings.Join(words, " "))
			break
		}
	}
	return filters
}

// detectState tries the abbreviation form first. The full-name form is only
// consulted when the first "in xx" token is not a known abbreviation.
func detectState(q string) (string, bool) {
	if m := stateAbbrPattern.FindStringSubmatch(q); m != nil {
		if name, ok := model.StateForAbbreviation(m[1]); ok {
			return name, true
		}
	}
	m := statePhrasePattern.FindStringSubmatch(q)
	if m == nil {
		return "", false
	}
	words := leadingWords(m[1])
	if len(words) == 0 {
		return "", false
	}
	// Prefer the longest run of words naming a real state ("new york").
	for n := len(words); n > 0; n-- {
		if name, ok := model.CanonicalStateName(strings.Join(words[:n], " ")); ok {
			return name, true
		}
	}
	return titleCase(words[0]), true
}

// leadingWords strips punctuation and returns the words before the first
// stop word or year.
func leadingWords(phrase string) []string {
	var out []string
	for _, w := range strings.Fields(punctuation.ReplaceAllString(phrase, "")) {
		if phraseStops[w] || yearPattern.MatchString(w) {
			break
		}
		out = append(out, w)
	}
	return out
}

func titleCase(s string) string {
	// Casers are stateful; one per call keeps Parse safe for concurrent use.
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// Phrase is one recognised cue and what it selects.
type Phrase struct {
	Text    string `json:"text"`
	Selects string `json:"selects"`
}

// Vocabulary lists the phrasings the parser recognises, in precedence order
// within each group.
func Vocabulary() []Phrase {
	out := []Phrase{{Text: "profit", Selects: "metric " + string(model.MetricProfit)}}
	for _, rule := range windowRules {
		for _, p := range rule.phrases {
			out = append(out, Phrase{Text: p, Selects: "time window"})
		}
	}
	for _, rule := range dimensionRules {
		for _, p := range rule.phrases {
			out = append(out, Phrase{Text: strings.TrimSpace(p), Selects: "group by " + string(rule.dim)})
		}
	}
	out = append(out,
		Phrase{Text: "top <n> <categories|products|regions|states>", Selects: "top-N ranking"},
		Phrase{Text: "in <state or two-letter abbreviation>", Selects: "filter " + string(model.ColState)},
		Phrase{Text: "category <name>", Selects: "filter " + string(model.ColCategory)},
	)
	return out
}
