package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"gastei 2 mil na viagem", 2000},
		{"despesa de 35,50 no mercado", 35.50},
		{"paguei r$ 150 de luz", 150},
		{"compra de 1,5 mil", 1500},
		{"5k de reforma", 5000},
		{"custou 99.90", 99.90},
	}
	for _, tc := range cases {
		got, ok := ExtractAmount(tc.text)
		assert.True(t, ok, tc.text)
		assert.InDelta(t, tc.want, got, 0.001, tc.text)
	}

	_, ok := ExtractAmount("despesa sem numero nenhum")
	assert.False(t, ok)
}

func TestDetectCategory(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"compras no supermercado", CategoryFood},
		{"pizza com os amigos", CategoryFood},
		{"uber para o aeroporto", CategoryTransport},
		{"diaria do hotel", CategoryLodging},
		{"ingressos do cinema", CategoryEntertainment},
		{"roupa nova", CategoryShopping},
		{"conta de luz", CategoryBills},
		{"remedio na farmacia", CategoryHealth},
		{"coisas aleatorias", CategoryOther},
		{"", CategoryOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectCategory(tc.text), tc.text)
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryFood, NormalizeCategory("alimentação"))
	assert.Equal(t, CategoryFood, NormalizeCategory("Alimentacao"))
	assert.Equal(t, CategoryHealth, NormalizeCategory("saúde"))
	assert.Equal(t, CategoryOther, NormalizeCategory("categoria inventada"))
	assert.Equal(t, CategoryOther, NormalizeCategory(""))
}

func TestExtractDescription(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"adicionar despesa de 50 reais no mercado", "Mercado"},
		{"registrar gasto com pizza de r$ 35,50", "Pizza"},
		{"paguei 20 reais de estacionamento", "Estacionamento"},
		{"adicionar despesa de 100 reais", defaultExpenseDescription},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractDescription(tc.text), tc.text)
	}
}

func TestParseFinance(t *testing.T) {
	got := ParseFinance("adicionar despesa de 50 reais no mercado")
	assert.Equal(t, "Mercado", got.Description)
	assert.InDelta(t, 50, got.Amount, 0.001)
	assert.Equal(t, CategoryFood, got.Category)

	got = ParseFinance("registrar gasto com pizza de 2 mil")
	assert.InDelta(t, 2000, got.Amount, 0.001)
	assert.Equal(t, CategoryFood, got.Category)
}
