package nlp

import (
	"regexp"
	"strings"
)

var eventCutRe = regexp.MustCompile(`\s+\b(no|na|em|para|pra|pro|ao|as|a|com)\b.*$`)

var eventVerbRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(CreationVerbs))
	for _, v := range CreationVerbs {
		res[v] = regexp.MustCompile(`\b` + v + `\b(?:\s+(?:um|uma|o|a)\b)?\s*(.+)`)
	}
	return res
}()

// ExtractEventName pulls the name of an activity or date from a creation
// command: the words right after the creation verb, up to the first locative
// or temporal preposition. "marcar um jantar no restaurante" gives "Jantar".
// Falls back to the given default when nothing usable remains.
func ExtractEventName(text, defaultName string) string {
	t := Normalize(text)

	var m []string
	for _, v := range CreationVerbs {
		if m = eventVerbRes[v].FindStringSubmatch(t); m != nil {
			break
		}
	}
	if m == nil {
		return defaultName
	}

	name := eventCutRe.ReplaceAllString(m[1], "")
	name = descNumberRe.ReplaceAllString(name, "")
	name = collapseSpaces(name)
	if name == "" {
		return defaultName
	}
	return capitalizeSentence(name)
}

// StripEventFiller removes dangling articles and connective words left at the
// edges of an extracted name.
func StripEventFiller(name string) string {
	name = strings.TrimSpace(name)
	name = leadingArticleRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}
