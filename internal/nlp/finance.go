package nlp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Canonical expense categories, Title-case Portuguese. This is the single
// representation used everywhere; the AI adapter's lower-case vocabulary is
// normalized into it at the boundary (NormalizeCategory).
const (
	CategoryFood          = "Alimentação"
	CategoryTransport     = "Transporte"
	CategoryLodging       = "Acomodação"
	CategoryEntertainment = "Entretenimento"
	CategoryShopping      = "Compras"
	CategoryBills         = "Contas"
	CategoryHealth        = "Saúde"
	CategoryOther         = "Outros"
)

// categoryKeywords is scanned in fixed order; the first category with a hit
// wins. Keywords are in normalized form (no accents).
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{CategoryFood, []string{
		"mercado", "supermercado", "comida", "lanche", "restaurante", "pizza",
		"lanchonete", "padaria", "bar", "bebida", "churrasco", "ifood",
	}},
	{CategoryTransport, []string{
		"uber", "onibus", "metro", "gasolina", "estacionamento", "carro",
		"passagem", "corrida", "combustivel",
	}},
	{CategoryLodging, []string{"hotel", "pousada", "airbnb", "hospedagem", "motel"}},
	{CategoryEntertainment, []string{
		"cinema", "show", "teatro", "parque", "viagem", "festa", "evento",
		"jogo", "balada",
	}},
	{CategoryShopping, []string{"roupa", "sapato", "shopping", "eletronico", "livro", "acessorio"}},
	{CategoryBills, []string{"luz", "agua", "telefone", "internet", "aluguel", "energia"}},
	{CategoryHealth, []string{
		"farmacia", "remedio", "remedios", "medico", "consulta", "hospital",
		"dentista", "academia", "medicamentos",
	}},
}

// DetectCategory is total: any input, including the empty string, resolves
// to a category, with "Outros" as the fallback.
func DetectCategory(text string) string {
	t := Normalize(text)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(t, kw) {
				return c.name
			}
		}
	}
	return CategoryOther
}

// NormalizeCategory maps a free-form category string (typically the AI
// adapter's lower-case vocabulary) onto the canonical set. Unknown values
// collapse to "Outros".
func NormalizeCategory(cat string) string {
	switch Normalize(cat) {
	case "alimentacao":
		return CategoryFood
	case "transporte":
		return CategoryTransport
	case "acomodacao":
		return CategoryLodging
	case "entretenimento":
		return CategoryEntertainment
	case "compras":
		return CategoryShopping
	case "contas":
		return CategoryBills
	case "saude":
		return CategoryHealth
	default:
		return CategoryOther
	}
}

var amountRe = regexp.MustCompile(`(?:r\$ ?)?(\d+(?:[.,]\d{1,2})?)\s*(mil|k)?`)

// ExtractAmount parses a currency-agnostic magnitude: optional "r$" marker,
// comma accepted as decimal separator, a trailing "mil"/"k" multiplying by
// a thousand. Rounded to 2 decimal places; nil-equivalent is signalled by
// the ok return.
func ExtractAmount(text string) (float64, bool) {
	t := strings.ReplaceAll(Normalize(text), ",", ".")
	m := amountRe.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		value *= 1000
	}
	return math.Round(value*100) / 100, true
}

const defaultExpenseDescription = "Despesa sem descrição"

// Finance description stop words: conjugated command verbs, resource nouns,
// prepositions, currency words and date fillers.
var descStopRe = regexp.MustCompile(`\b(adicionar|adicione|adiciona|adicionou|adicionaram|registrar|registre|registra|registrou|registraram|criar|cria|crie|criou|criaram|inserir|insere|insira|inseriu|lancar|lanca|lance|lancou|anotar|anota|anote|anotou|cadastrar|cadastre|cadastrou|nova|novo|despesa|despesas|gasto|gastos|financa|financas|compra|comprei|paguei|gastei|pagamento|gastar|valor|reais|real|r\$|de|do|da|no|na|em|com|para|por|ao|aos|as|os|o|a|um|uma|hoje|amanha|ontem|data|atual)\b`)

var descNumberRe = regexp.MustCompile(`\d+[.,]?\d*`)

// CleanDescription strips command verbs, prepositions, currency words and
// numbers, collapses whitespace and capitalizes. An empty remainder becomes
// the placeholder description, never the empty string.
func CleanDescription(text string) string {
	t := Normalize(text)
	t = descStopRe.ReplaceAllString(t, "")
	t = descNumberRe.ReplaceAllString(t, "")
	t = collapseSpaces(t)
	if t == "" {
		return defaultExpenseDescription
	}
	return capitalizeSentence(t)
}

// Description capture ladder, most specific first.
var descPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:com|na|no|em|de|para)\s+([a-z\s]+?)(?:$|\s*(?:r\$|\d|reais?|mil|valor|hoje|amanha|data))`),
	regexp.MustCompile(`(?:despesa|gasto|financa|compra|paguei|gastei)\s+(?:com|de|em|para|na|no)?\s*([a-z\s]+?)(?:\s*(?:no valor|com o valor|r\$|\d|reais?|mil|hoje|amanha|data)|$)`),
	regexp.MustCompile(`(?:criar|cria|registrar|registre|adicionar|adicione|inserir)\s+(?:despesa|gasto|financa)?\s*(?:com|de|em|para)?\s*([a-z\s]+?)(?:\s*(?:no valor|com o valor|valor|r\$|\d|reais?|mil|hoje|amanha|data)|$)`),
}

var descFallbackSkipRe = regexp.MustCompile(`^(reais?|real|mil|hoje|amanha|ontem|data|atual|valor|r\$)$`)

// ExtractDescription walks the capture ladder and falls back to the last
// significant word of the command. Always returns a usable description.
func ExtractDescription(text string) string {
	t := Normalize(text)

	for _, re := range descPatterns {
		m := re.FindStringSubmatch(t)
		if m == nil || m[1] == "" {
			continue
		}
		if d := CleanDescription(m[1]); d != defaultExpenseDescription {
			return d
		}
	}

	words := strings.Fields(t)
	for i := len(words) - 1; i >= 0; i-- {
		w := words[i]
		if len(w) <= 2 || descFallbackSkipRe.MatchString(w) {
			continue
		}
		if _, err := strconv.ParseFloat(w, 64); err == nil {
			continue
		}
		if d := CleanDescription(w); d != defaultExpenseDescription {
			return d
		}
	}

	return defaultExpenseDescription
}

// ParsedFinance is the rule-based extraction for a finance create command.
type ParsedFinance struct {
	Description string
	Amount      float64
	Category    string
}

// ParseFinance runs the full rule-based finance extraction. A missing amount
// is tolerated (zero); the description is always synthesized.
func ParseFinance(text string) ParsedFinance {
	amount, _ := ExtractAmount(text)
	return ParsedFinance{
		Description: ExtractDescription(text),
		Amount:      amount,
		Category:    DetectCategory(text),
	}
}
