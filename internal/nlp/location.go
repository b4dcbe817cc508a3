package nlp

import (
	"regexp"
	"strings"

	"github.com/noisapp/voice-bfv-go/internal/domain"
)

// Locative prepositions, scanned in order. "a" comes last: it is the most
// ambiguous and only wins when nothing longer matched.
var locativePreps = []string{"no", "na", "em", "para", "pra", "pro", "ao", "a"}

var locativeRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(locativePreps))
	for _, p := range locativePreps {
		res[p] = regexp.MustCompile(`\b` + p + `\s+([^,.;]+)`)
	}
	return res
}()

// locationStopRe cuts the captured fragment at the first temporal token so
// "no parque amanha as 15h" yields just "parque".
var locationStopRe = regexp.MustCompile(`\b(?:amanha|hoje|depois|proxima|semana|segunda|terca|quarta|quinta|sexta|sabado|domingo|dia|as|às|\d{1,2}[:h]\d{0,2})\b`)

// leadingArticleRe strips articles and nested prepositions left inside the
// captured fragment.
var leadingArticleRe = regexp.MustCompile(`\b(do|da|de|no|na|em|para|pra|ao|a)\b`)

// ExtractLocation captures the text after the first locative preposition, up
// to a stop word or punctuation, and title-cases it. Empty after stripping
// means no location.
func ExtractLocation(t string) domain.ExtractedLocation {
	for _, p := range locativePreps {
		m := locativeRes[p].FindStringSubmatchIndex(t)
		if m == nil {
			continue
		}

		frag := t[m[2]:m[3]]
		if stop := locationStopRe.FindStringIndex(frag); stop != nil {
			frag = frag[:stop[0]]
		}
		frag = strings.TrimSpace(leadingArticleRe.ReplaceAllString(frag, ""))
		if frag == "" {
			continue
		}

		return domain.ExtractedLocation{
			Text: TitleCase(frag),
			Span: domain.Span{Start: m[0], End: m[1]},
		}
	}
	return domain.ExtractedLocation{Span: domain.NoSpan}
}
