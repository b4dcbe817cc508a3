package nlp

import (
	"regexp"
	"strings"

	"github.com/noisapp/voice-bfv-go/internal/domain"
)

// Classifier tables. These are package-level constants in spirit: nothing
// mutates them after init, so DetectIntent stays a pure function of its
// input.
//
// Precedence is deliberate, not incidental: view phrasing for one module can
// contain words that look like another module's create trigger ("ver
// despesas da viagem"), so view tables run first and earlier modules win
// ties. Order: finances, trips, dates, activities, then places, then the
// residual activity-verb catch-all.

var financeViewPhrases = []string{
	"ver despesa", "ver despesas", "listar despesas", "mostrar despesas",
	"exibir despesas", "ver financas", "mostrar financas", "listar financas",
	"exibir financas", "ver gastos", "mostrar gastos", "listar gastos",
	"exibir gastos", "consultar gastos", "consultar despesas",
	"consultar financas", "ver todas as despesas", "ver meus gastos",
	"exibir meus gastos", "consultar minhas financas",
}

var tripViewPhrases = []string{
	"ver viagem", "ver viagens", "listar viagens", "mostrar viagens",
	"ver proximas viagens", "viagens agendadas", "viagens marcadas",
	"ver viagens marcadas", "ver viagens agendadas", "proximas viagens",
}

var dateViewPhrases = []string{
	"ver encontro", "ver encontros", "mostrar encontros", "listar encontros",
	"consultar encontros", "ver proximos encontros", "encontros marcados",
	"encontros agendados",
}

var activityViewPhrases = []string{
	"ver atividade", "ver atividades", "listar atividades",
	"mostrar atividades", "consultar atividades", "ver proximas atividades",
	"atividades agendadas", "atividades marcadas",
	"ver evento", "ver eventos", "listar eventos", "mostrar eventos",
	"consultar eventos", "ver proximos eventos", "eventos marcados",
	"eventos agendados",
	"ver compromisso", "ver compromissos", "listar compromissos",
	"consultar compromissos",
}

var financeCreatePhrases = []string{
	"adicionar despesa", "registrar despesa", "nova despesa",
	"inserir despesa", "adicionar gasto", "registrar gasto",
	"adicionar financa", "registrar financa", "nova financa",
	"criar gasto", "criar despesa",
	"adicionaram uma despesa", "adicionou uma despesa",
	"adicione uma despesa", "adicione despesa", "registre despesa",
	"registraram despesa", "criaram despesa",
}

var tripCreatePhrases = []string{
	"adicionar viagem", "criar viagem", "marcar viagem", "cadastrar viagem",
	"programar viagem", "planejar viagem", "agendar viagem", "nova viagem",
	"viagem para",
}

var dateCreatePhrases = []string{
	"marcar encontro", "agendar encontro", "programar encontro",
	"marcar um encontro", "agendar um encontro", "programar um encontro",
	"encontro",
}

// CreationVerbs trigger the activities residual and gate verb-only finance
// phrasing ("registrar 50 reais de pizza"). Shared with the event-name
// extractor.
var CreationVerbs = []string{
	"marcar", "agendar", "criar", "adicionar", "planejar", "programar",
	"registrar",
}

// Domain-keyword gates: broad vocabulary presence, distinct from the create
// trigger lists. A module's create path only fires when its gate is open,
// which suppresses cross-module false positives.
var (
	financeGateRe = regexp.MustCompile(`\b(despesas?|gastos?|financas?|valor|reais?|r\$|dinheiro|pagar|pagamento|custo)\b`)
	tripGateRe    = regexp.MustCompile(`\b(viage(?:m|ns)|viajar|passeios?|excursao|excursoes|roteiros?)\b`)
	dateGateRe    = regexp.MustCompile(`\bencontros?\b`)
)

// Place phrasing is compositional (verb + place noun, noun + proximity), so
// it is matched with full regular expressions instead of substrings.
const (
	placeVerbsAlt = `(buscar|procurar|achar|encontrar|localizar|ver)`
	placeWordsAlt = `(bares?|restaurantes?|hoteis?|cafes?|cafeterias?|parques?|museus?|boates?|cinemas?|zoologicos?|mercados?|supermercados?` +
		`|pizzarias?|pizzas?|sushis?|hamburguerias?|hamburguer(?:es)?|burgers?` +
		`|churrascarias?|rodizios?|pastelarias?|pasteis|sopas?` +
		`|comida\s+(?:japonesa|italiana|chinesa|coreana|asiatica))`
)

var placePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b` + placeVerbsAlt + `\s+` + placeWordsAlt + `\b`),
	regexp.MustCompile(`\b` + placeWordsAlt + `\s+(no|na|em|perto|proximo)\b`),
	regexp.MustCompile(`\b` + placeWordsAlt + `.*\b(perto\s+de\s+mim|nas?\s+proximidades|aqui\s+perto)\b`),
}

// DetectIntent classifies a raw command into (module, action). It never
// fails: empty or unrecognizable input yields the zero Intent.
func DetectIntent(text string) domain.Intent {
	t := Normalize(text)
	if t == "" {
		return domain.Intent{Module: domain.ModuleNone, Action: domain.ActionNone}
	}

	// View tables first, fixed module precedence.
	if containsAny(t, financeViewPhrases) {
		return domain.Intent{Module: domain.ModuleFinances, Action: domain.ActionView}
	}
	if containsAny(t, tripViewPhrases) {
		return domain.Intent{Module: domain.ModuleTrips, Action: domain.ActionView}
	}
	if containsAny(t, dateViewPhrases) {
		return domain.Intent{Module: domain.ModuleDates, Action: domain.ActionView}
	}
	if containsAny(t, activityViewPhrases) {
		return domain.Intent{Module: domain.ModuleActivities, Action: domain.ActionView}
	}

	hasFinance := financeGateRe.MatchString(t)
	hasTrip := tripGateRe.MatchString(t)
	hasDate := dateGateRe.MatchString(t)
	hasVerb := containsAny(t, CreationVerbs)

	// Create tables, each behind its domain gate.
	if hasFinance && (containsAny(t, financeCreatePhrases) || hasVerb) {
		return domain.Intent{Module: domain.ModuleFinances, Action: domain.ActionCreate}
	}
	if hasTrip && containsAny(t, tripCreatePhrases) {
		return domain.Intent{Module: domain.ModuleTrips, Action: domain.ActionCreate}
	}

	if placeMatch(t) {
		return domain.Intent{Module: domain.ModulePlaces, Action: domain.ActionSearch}
	}

	if hasDate && containsAny(t, dateCreatePhrases) {
		return domain.Intent{Module: domain.ModuleDates, Action: domain.ActionCreate}
	}

	// Residual: a bare creation verb with no competing trigger defaults to
	// an activity ("marcar cinema sexta").
	if hasVerb && !hasTrip && !hasFinance && !hasDate {
		return domain.Intent{Module: domain.ModuleActivities, Action: domain.ActionCreate}
	}

	return domain.Intent{Module: domain.ModuleNone, Action: domain.ActionNone}
}

func containsAny(t string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

var placeKeywordRe = regexp.MustCompile(`\b` + placeWordsAlt + `\b`)

// ExtractPlaceKeyword returns the venue word that triggered a place search
// ("restaurantes", "comida japonesa"), empty when none is present.
func ExtractPlaceKeyword(text string) string {
	return placeKeywordRe.FindString(Normalize(text))
}

func placeMatch(t string) bool {
	for _, re := range placePatterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}
