package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TripRange is a start/end pair of calendar dates ("2025-03-10"). A single
// recognized date fills both ends.
type TripRange struct {
	StartDate string
	EndDate   string
}

const isoDay = "2006-01-02"

var (
	// "data de inicio no dia 10 de marco de 2025 ... data fim sendo dia 15 de marco"
	tripVerboseRangeRe = regexp.MustCompile(
		`(?:data\s+(?:de\s+)?(?:inicio|start|comeco))[\s\w]*(?:no\s+dia\s+|dia\s+)?(\d{1,2}|1º|primeiro)[º°]?\s*(?:de|do|da)?\s*([a-z]+)?\s*(?:de\s+)?(\d{4})?.*?(?:data\s+(?:de\s+)?(?:fim|final|end|termino))[\s\w]*(?:no\s+dia\s+|dia\s+|sendo\s+dia\s+)?(\d{1,2}|1º|primeiro)[º°]?\s*(?:de|do|da)?\s*([a-z]+)?\s*(?:de\s+)?(\d{4})?`)

	// "entre os dias 10 e 15 de marco [de 2025]", "do dia 1º ao dia 5 de abril"
	tripFullRangeRe = regexp.MustCompile(
		`(?:entre\s+(?:os\s+)?dias?\s+|dos?\s+dias?\s+|do\s+dia\s+|de\s+|no\s+dia\s+|dia\s+)?(\d{1,2}|1º|primeiro)[/\-.]?\s*(?:de|do|da)?\s*([a-z0-9]*)?(?:\s*(?:de|do)\s*(\d{4}))?(?:\s*(?:ao|a|ate|e)\s*(?:o\s+)?(?:dia\s+)?)(\d{1,2}|1º|primeiro)[/\-.]?\s*(?:de|do|da)?\s*([a-z0-9]*)?(?:\s*(?:de|do)\s*(\d{4}))?`)

	// "10/03/2025 a 15/03/2025"
	tripNumericRangeRe = regexp.MustCompile(
		`(\d{1,2})[/.\-](\d{1,2})(?:[/.\-](\d{2,4}))?(?:\s*(?:ao|a|ate|e)\s*)(\d{1,2})[/.\-](\d{1,2})(?:[/.\-](\d{2,4}))?`)

	// "no dia 10 de marco"
	tripSingleRe = regexp.MustCompile(
		`(?:no\s+dia\s+|para\s+o\s+dia\s+|do\s+dia\s+|em\s+|dia\s+)?(\d{1,2}|1º|primeiro)[/\-.]?\s*(?:de|do|da)?\s*([a-z0-9]+)?(?:\s*(?:de|do)\s*(\d{4}))?`)
)

// ParseTripRange recognizes the start/end dates of a trip command. Patterns
// are tried most-specific first; an end before its start rolls the end into
// the next year ("de dezembro a janeiro").
func ParseTripRange(text string, clock Clock) TripRange {
	t := Normalize(text)
	year := clock.Now().Year()

	if m := tripVerboseRangeRe.FindStringSubmatch(t); m != nil {
		start := buildDate(m[1], m[2], m[3], 0, year)
		end := buildDate(m[4], orFirst(m[5], m[2]), orFirst(m[6], m[3]), 0, year)
		if r, ok := rangeOf(start, end); ok {
			return r
		}
	}

	if m := tripFullRangeRe.FindStringSubmatch(t); m != nil {
		m1 := orFirst(m[2], m[5])
		fb1, _ := safeInt(m1)
		fb2, _ := safeInt(orFirst(m[5], m1))
		start := buildDate(m[1], m1, m[3], fb1, year)
		end := buildDate(m[4], orFirst(m[5], m1), orFirst(m[6], m[3]), fb2, year)
		if r, ok := rangeOf(start, end); ok {
			return r
		}
	}

	if m := tripNumericRangeRe.FindStringSubmatch(t); m != nil {
		mo1, _ := safeInt(m[2])
		mo2, _ := safeInt(m[5])
		start := buildDate(m[1], "", m[3], mo1, year)
		end := buildDate(m[4], "", m[6], mo2, year)
		if start != nil && end != nil && end.Before(*start) {
			e := end.AddDate(1, 0, 0)
			end = &e
		}
		return TripRange{StartDate: dayOrEmpty(start), EndDate: dayOrEmpty(end)}
	}

	if m := tripSingleRe.FindStringSubmatch(t); m != nil {
		fb, _ := safeInt(m[2])
		d := buildDate(m[1], m[2], m[3], fb, year)
		day := dayOrEmpty(d)
		return TripRange{StartDate: day, EndDate: day}
	}

	return TripRange{}
}

func orFirst(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func rangeOf(start, end *time.Time) (TripRange, bool) {
	if start == nil || end == nil {
		return TripRange{}, false
	}
	if end.Before(*start) {
		e := end.AddDate(1, 0, 0)
		end = &e
	}
	return TripRange{StartDate: start.Format(isoDay), EndDate: end.Format(isoDay)}, true
}

func dayOrEmpty(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(isoDay)
}

// City extraction ladder, most explicit phrasing first.
var tripCityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:viagem|viagens)\s+(?:para|pra|pro|em|ao|a)\s+(?:o\s+|a\s+)?([a-z\s-]+?)(?:\s+com\s+|\s+r\$|\s+no\s+dia|\s+do\s+dia|\s+dia\s+\d|\s+data\s+|\s+entre\s+|,|$)`),
	regexp.MustCompile(`\b(?:planejar|criar|marcar|adicionar|agendar|programar|registrar)\s+viagem\s+(?:para|pra|pro|em|ao|a)\s+(?:o\s+|a\s+)?([a-z\s-]+?)(?:\s+com\s+|\s+r\$|\s+no\s+dia|\s+do\s+dia|\s+dia\s+\d|\s+data\s+|\s+entre\s+|,|$)`),
	regexp.MustCompile(`\b(?:(?:viajar|ir|vamos|conhecer|visitar)\s+)+(?:(?:para|pra|pro|em|a|ao|no|na)\s+)?(?:o\s+|a\s+)?([a-z\s-]+?)(?:\s+com\s+|\s+r\$|\s+no\s+dia|\s+do\s+dia|\s+dia\s+\d|\s+data\s+|\s+entre\s+|,|$)`),
	regexp.MustCompile(`\b(?:passeio|excursao|roteiro)\s+(?:para|pra|pro|em|a|ao|no|na)\s+(?:o\s+|a\s+)?([a-z\s-]+?)(?:\s+com\s+|\s+r\$|\s+no\s+dia|\s+do\s+dia|\s+dia\s+\d|\s+data\s+|\s+entre\s+|,|$)`),
}

// ExtractTripCity finds the destination in a trip create command. Empty
// string when no phrasing matched.
func ExtractTripCity(text string) string {
	t := Normalize(text)
	for _, re := range tripCityPatterns {
		if m := re.FindStringSubmatch(t); m != nil {
			return CleanCity(m[1])
		}
	}
	return ""
}

var (
	cityLeadingArticleRe = regexp.MustCompile(`^(o|a|os|as)\s+`)
	cityTailMarkersRe    = regexp.MustCompile(`\s+(com\s+(um|uma|o|a|orcamento|budget|data|inicio|fim|descricao)|r\$|reais|no\s+dia|do\s+dia|dia\s+\d|entre\s+|de\s+\d|ate\s+).*$`)
	cityTrailingPrepRe   = regexp.MustCompile(`\b(no|na|em|para|pra|pro|ao|a|de|do|da|dos|das)\b\s*$`)
)

var cityLowercaseWords = map[string]bool{
	"de": true, "da": true, "do": true, "dos": true, "das": true, "e": true,
}

// CleanCity trims articles, cuts the tail at budget/date markers and title
// cases the remainder, keeping connective prepositions lower-case
// ("Foz do Iguacu", not "Foz Do Iguacu").
func CleanCity(name string) string {
	city := strings.TrimSpace(name)
	city = cityLeadingArticleRe.ReplaceAllString(city, "")
	city = cityTailMarkersRe.ReplaceAllString(city, "")
	city = cityTrailingPrepRe.ReplaceAllString(city, "")
	city = collapseSpaces(city)
	if city == "" {
		return ""
	}

	words := strings.Fields(city)
	for i, w := range words {
		if i > 0 && cityLowercaseWords[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = upperFirst(strings.ToLower(w))
	}
	return strings.Join(words, " ")
}

var tripBudgetRe = regexp.MustCompile(
	`(?:r\$|\breais?\b|\bvalor\b|\borcamento\b|\bcusto\b|\bpreco\b|\bgastar\b|\bgasto\b|\binvestir\b|\bcustando\b|\bpor\b)[^\d]*(\d+(?:[.\s]?\d{3})*(?:,\d{1,2})?)(?:\s*(mil|k))?`)

// ExtractTripBudget finds an estimated budget: requires one of the money
// markers, then a number with optional thousand separators and a "mil"/"k"
// multiplier.
func ExtractTripBudget(text string) (float64, bool) {
	t := Normalize(text)
	m := tripBudgetRe.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}

	raw := strings.ReplaceAll(m[1], " ", "")
	// drop thousand separators before switching decimal comma to dot
	raw = thousandSepRe.ReplaceAllString(raw, "$1")
	raw = strings.ReplaceAll(raw, ",", ".")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		value *= 1000
	}
	return value, true
}

var thousandSepRe = regexp.MustCompile(`\.(\d{3})\b`)

// Trip free-text description markers ("com descricao ...", "obs: ...").
var tripDescPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:com\s+(?:a\s+)?descricao|descricao)\s+([a-z\s-]+?)(?:\s*$|,|\.|;)`),
	regexp.MustCompile(`(?:descricao:)\s*([a-z\s-]+?)(?:\s*$|,|\.|;)`),
	regexp.MustCompile(`(?:observacao|obs|nota):\s*([a-z\s-]+?)(?:\s*$|,|\.|;)`),
}

// ExtractTripDescription finds an explicit trip note; empty when absent.
func ExtractTripDescription(text string) string {
	t := Normalize(text)
	for _, re := range tripDescPatterns {
		if m := re.FindStringSubmatch(t); m != nil && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
