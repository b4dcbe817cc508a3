package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/noisapp/voice-bfv-go/internal/domain"
)

// Month names and their abbreviated forms, normalized (no accents).
var months = map[string]time.Month{
	"janeiro": time.January, "jan": time.January,
	"fevereiro": time.February, "fev": time.February,
	"marco": time.March, "mar": time.March,
	"abril": time.April, "abr": time.April,
	"maio": time.May, "mai": time.May,
	"junho": time.June, "jun": time.June,
	"julho": time.July, "jul": time.July,
	"agosto": time.August, "ago": time.August,
	"setembro": time.September, "set": time.September,
	"outubro": time.October, "out": time.October,
	"novembro": time.November, "nov": time.November,
	"dezembro": time.December, "dez": time.December,
}

// weekdayOrder fixes the scan order: when a command names more than one
// weekday, the earliest name in this list wins, on every call.
var weekdayOrder = []string{
	"domingo", "segunda", "terca", "quarta", "quinta", "sexta", "sabado",
}

var weekdays = map[string]time.Weekday{
	"domingo": time.Sunday,
	"segunda": time.Monday,
	"terca":   time.Tuesday,
	"quarta":  time.Wednesday,
	"quinta":  time.Thursday,
	"sexta":   time.Friday,
	"sabado":  time.Saturday,
}

var weekdayRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(weekdayOrder))
	for _, name := range weekdayOrder {
		res[name] = regexp.MustCompile(`(?:proxima|essa|na|no|em)?\s*\b` + name + `\b`)
	}
	return res
}()

var (
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})(?:[/\-](\d{2,4}))?`)
	textualDateRe = regexp.MustCompile(`(\d{1,2}|1º|primeiro)\s+de\s+([a-zç]+)(?:\s+de\s+(\d{4}))?`)
	inDaysRe      = regexp.MustCompile(`daqui a\s*(\d+)\s*dias?`)
	nextRe        = regexp.MustCompile(`proxima`)
)

// cleanDay turns "1º" and "primeiro" into "1".
func cleanDay(s string) string {
	s = strings.NewReplacer("º", "", "°", "", "primeiro", "1").Replace(s)
	return strings.TrimSpace(s)
}

func safeInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

// buildDate assembles a local-midnight date from its parts. monthWord wins
// over fallbackMonth; two-digit years are promoted to the 2000s. Returns nil
// when any part is missing or non-numeric.
func buildDate(dayStr, monthWord, yearStr string, fallbackMonth int, fallbackYear int) *time.Time {
	day, ok := safeInt(cleanDay(dayStr))
	if !ok || day == 0 {
		return nil
	}

	month := fallbackMonth
	if monthWord != "" {
		if m, found := months[Normalize(monthWord)]; found {
			month = int(m)
		}
	}
	if month < 1 || month > 12 {
		return nil
	}

	year := fallbackYear
	if yearStr != "" {
		if y, ok := safeInt(yearStr); ok {
			year = y
		}
	}
	if year < 100 {
		year += 2000
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return &d
}

// ExtractDate scans normalized text for a date phrase. Branches are tried in
// order: numeric D/M[/Y], textual "D de <mês> [de YYYY]", weekday reference,
// then the relative keywords. The returned span covers exactly the text the
// winning branch consumed, so later extractors can skip it.
func ExtractDate(t string, clock Clock) domain.ExtractedDate {
	now := clock.Now()

	if m := numericDateRe.FindStringSubmatchIndex(t); m != nil {
		day := t[m[2]:m[3]]
		monthStr := t[m[4]:m[5]]
		year := ""
		if m[6] >= 0 {
			year = t[m[6]:m[7]]
		}
		month, _ := safeInt(monthStr)
		d := buildDate(day, "", year, month, now.Year())
		return domain.ExtractedDate{Value: d, Span: domain.Span{Start: m[0], End: m[1]}}
	}

	if m := textualDateRe.FindStringSubmatchIndex(t); m != nil {
		day := t[m[2]:m[3]]
		monthWord := t[m[4]:m[5]]
		year := ""
		if m[6] >= 0 {
			year = t[m[6]:m[7]]
		}
		if _, known := months[Normalize(monthWord)]; known {
			d := buildDate(day, monthWord, year, 0, now.Year())
			return domain.ExtractedDate{Value: d, Span: domain.Span{Start: m[0], End: m[1]}}
		}
	}

	if d, span, ok := matchWeekday(t, now); ok {
		return domain.ExtractedDate{Value: d, Span: span}
	}

	// "depois de amanha" must be probed before plain "amanha".
	if idx := strings.Index(t, "depois de amanha"); idx >= 0 {
		d := midnight(now).AddDate(0, 0, 2)
		return domain.ExtractedDate{Value: &d, Span: domain.Span{Start: idx, End: idx + len("depois de amanha")}}
	}
	if idx := strings.Index(t, "amanha"); idx >= 0 {
		d := midnight(now).AddDate(0, 0, 1)
		return domain.ExtractedDate{Value: &d, Span: domain.Span{Start: idx, End: idx + len("amanha")}}
	}
	if m := inDaysRe.FindStringSubmatchIndex(t); m != nil {
		n, _ := safeInt(t[m[2]:m[3]])
		d := midnight(now).AddDate(0, 0, n)
		return domain.ExtractedDate{Value: &d, Span: domain.Span{Start: m[0], End: m[1]}}
	}

	return domain.ExtractedDate{Span: domain.NoSpan}
}

// matchWeekday resolves "segunda", "proxima sexta", "na quarta" to a concrete
// date. A zero or negative offset rolls forward a week, as does an explicit
// "proxima": the result is always >= today, and strictly the next occurrence
// when "proxima" is present.
func matchWeekday(t string, now time.Time) (*time.Time, domain.Span, bool) {
	for _, name := range weekdayOrder {
		m := weekdayRes[name].FindStringIndex(t)
		if m == nil {
			continue
		}
		diff := int(weekdays[name]) - int(now.Weekday())
		if diff <= 0 || nextRe.MatchString(t[m[0]:m[1]]) {
			diff += 7
		}
		d := midnight(now).AddDate(0, 0, diff)
		return &d, domain.Span{Start: m[0], End: m[1]}, true
	}
	return nil, domain.NoSpan, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClampFuture guarantees a timestamp strictly in the future: anything at or
// before now rolls to the next full hour.
func ClampFuture(d time.Time, clock Clock) time.Time {
	now := clock.Now()
	if d.After(now) {
		return d
	}
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, 0, 0, 0, now.Location())
}

// ToLocalISO renders a timestamp as ISO-8601 shifted by the app's fixed
// UTC-3 offset, so calendar-day semantics hold regardless of the server's
// timezone.
func ToLocalISO(d time.Time) string {
	const offsetMinutes = -180
	return d.Add(time.Duration(offsetMinutes) * time.Minute).UTC().Format("2006-01-02T15:04:05.000Z")
}
