package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "acomodacao em sao paulo", Normalize("  Acomodação em São Paulo "))
	assert.Equal(t, "cafe", Normalize("CAFÉ"))
	assert.Equal(t, "", Normalize("   "))
	// idempotent
	once := Normalize("Férias em Março")
	assert.Equal(t, once, Normalize(once))
}

func TestExtractTime(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		hour   int
		minute int
	}{
		{"h suffix", "no parque amanha as 15h", 15, 0},
		{"colon", "reuniao as 9:30", 9, 30},
		{"hmm", "jantar as 19h30", 19, 30},
		{"evening bumps", "cinema as 8 da noite", 20, 0},
		{"afternoon bumps", "encontro as 5 da tarde", 17, 0},
		{"morning twelve", "as 12 da manha", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTime(Normalize(tc.text))
			require.NotNil(t, got.Value)
			assert.Equal(t, tc.hour, got.Value.Hour)
			assert.Equal(t, tc.minute, got.Value.Minute)
		})
	}
}

func TestExtractTimeNone(t *testing.T) {
	got := ExtractTime(Normalize("marcar jantar com amigos"))
	assert.Nil(t, got.Value)
	assert.False(t, got.Span.Found())
}

func TestExtractLocation(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"marcar encontro no parque amanha as 15h", "Parque"},
		{"jantar na churrascaria do centro", "Churrascaria Centro"},
		{"reuniao em casa hoje", "Casa"},
	}
	for _, tc := range cases {
		got := ExtractLocation(Normalize(tc.text))
		assert.Equal(t, tc.want, got.Text, tc.text)
		assert.True(t, got.Span.Found(), tc.text)
	}
}

func TestExtractLocationNone(t *testing.T) {
	got := ExtractLocation(Normalize("ver despesas"))
	assert.Empty(t, got.Text)
	assert.False(t, got.Span.Found())
}

func TestExtractEventName(t *testing.T) {
	cases := []struct {
		text string
		def  string
		want string
	}{
		{"marcar um jantar no restaurante italiano amanha as 20h", "Atividade", "Jantar"},
		{"agendar cinema na sexta", "Atividade", "Cinema"},
		{"criar churrasco em casa", "Atividade", "Churrasco"},
		{"marcar encontro", "Encontro", "Encontro"},
		{"sem verbo nenhum aqui", "Atividade", "Atividade"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractEventName(tc.text, tc.def), tc.text)
	}
}
