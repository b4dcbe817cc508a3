package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTripRange(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		start string
		end   string
	}{
		{
			"full range textual",
			"planejar viagem para gramado entre os dias 10 e 15 de marco de 2025",
			"2025-03-10", "2025-03-15",
		},
		{
			"full range ordinal",
			"viagem do dia 1º ao dia 5 de abril",
			"2025-04-01", "2025-04-05",
		},
		{
			"numeric range",
			"viajar pro litoral de 10/03 a 15/03",
			"2025-03-10", "2025-03-15",
		},
		{
			"verbose range",
			"criar viagem com data de inicio no dia 10 de marco e data fim sendo dia 15 de marco",
			"2025-03-10", "2025-03-15",
		},
		{
			"single date fills both",
			"viagem para lisboa no dia 12 de outubro",
			"2025-10-12", "2025-10-12",
		},
		{
			"end before start rolls year",
			"viagem de 20 de dezembro a 5 de janeiro",
			"2025-12-20", "2026-01-05",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTripRange(tc.text, testClock)
			assert.Equal(t, tc.start, got.StartDate)
			assert.Equal(t, tc.end, got.EndDate)
		})
	}
}

func TestParseTripRangeNone(t *testing.T) {
	got := ParseTripRange("planejar viagem para gramado", testClock)
	assert.Empty(t, got.StartDate)
	assert.Empty(t, got.EndDate)
}

func TestExtractTripCity(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"planejar viagem para gramado entre os dias 10 e 15 de marco", "Gramado"},
		{"viajar pro rio de janeiro com orcamento de 2 mil", "Rio de Janeiro"},
		{"criar viagem para o chile no dia 10/05", "Chile"},
		{"vamos conhecer foz do iguacu", "Foz do Iguacu"},
		{"roteiro para a serra gaucha", "Serra Gaucha"},
		{"adicionar despesa de mercado", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractTripCity(tc.text), tc.text)
	}
}

func TestExtractTripBudget(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"viagem para gramado com orcamento de 2 mil", 2000},
		{"viajar gastando r$ 1.500", 1500},
		{"viagem custando 3500 reais", 3500},
		{"passeio por 800", 800},
	}
	for _, tc := range cases {
		got, ok := ExtractTripBudget(tc.text)
		assert.True(t, ok, tc.text)
		assert.InDelta(t, tc.want, got, 0.001, tc.text)
	}

	_, ok := ExtractTripBudget("viagem para gramado em marco")
	assert.False(t, ok)
}

func TestExtractTripDescription(t *testing.T) {
	assert.Equal(t, "passeio romantico",
		ExtractTripDescription("criar viagem para curitiba com descricao passeio romantico"))
	assert.Equal(t, "aniversario de casamento",
		ExtractTripDescription("viagem para gramado, obs: aniversario de casamento"))
	assert.Empty(t, ExtractTripDescription("viagem para gramado"))
}
