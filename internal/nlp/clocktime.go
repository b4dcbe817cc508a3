package nlp

import (
	"regexp"
	"strings"

	"github.com/noisapp/voice-bfv-go/internal/domain"
)

var timeTokenRe = regexp.MustCompile(`\b(\d{1,2})(?::|h)?(\d{2})?\b`)

// ExtractTime finds an "H[:MM]" or "HhMM" token and applies the period-of-day
// disambiguation: "tarde"/"noite" push an hour below 12 into the afternoon,
// "manha" pulls a literal 12 back to 0, and "meio dia"/"meia noite" force 12
// and 0 respectively. No token means nil; callers default to 00:00.
func ExtractTime(t string) domain.ExtractedTime {
	m := timeTokenRe.FindStringSubmatchIndex(t)
	if m == nil {
		return domain.ExtractedTime{Span: domain.NoSpan}
	}

	hour, _ := safeInt(t[m[2]:m[3]])
	minute := 0
	if m[4] >= 0 {
		minute, _ = safeInt(t[m[4]:m[5]])
	}

	if strings.Contains(t, "tarde") || strings.Contains(t, "noite") {
		if hour < 12 {
			hour += 12
		}
	}
	if strings.Contains(t, "manha") && hour == 12 {
		hour = 0
	}
	if strings.Contains(t, "meio dia") || strings.Contains(t, "meio-dia") {
		hour = 12
	}
	if strings.Contains(t, "meia noite") || strings.Contains(t, "meia-noite") {
		hour = 0
	}

	return domain.ExtractedTime{
		Value: &domain.ClockTime{Hour: hour, Minute: minute},
		Span:  domain.Span{Start: m[0], End: m[1]},
	}
}
