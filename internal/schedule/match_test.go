package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro-attendant/internal/models"
)

var testPrograms = []models.Program{
	{Names: []string{"executivo", "menu executivo", "almoço executivo"}},
	{Names: []string{"café da manhã", "cafe", "brunch"}},
	{Names: []string{"fondue", "fondue de queijo"}, Limited: true},
	{Names: []string{"música ao vivo"}},
}

var testFacts = []models.InfoFact{
	{Names: []string{"cardápio", "menu", "valores"}, Notes: []string{"Cardápio no link."}},
	{Names: []string{"estacionamento", "valet"}, Notes: []string{"Temos valet na porta."}},
	{Names: []string{"pet", "cachorro"}, Notes: []string{"Aceitamos pets na varanda."}},
	{Names: []string{"reserva", "reservas", "reservar mesa"}, Notes: []string{"Reservas pelo link."}},
	{Names: []string{"vegetariano", "vegano", "opções vegetarianas"}, Notes: []string{"Temos opções vegetarianas."}},
}

func TestFindProgram_SynonymContainsTerm(t *testing.T) {
	tests := []struct {
		term     string
		expected string
	}{
		{"fondue", "fondue"},
		{"café da manhã", "café da manhã"},
		{"MENU EXECUTIVO", "executivo"},
		{"executiv", "executivo"},
	}
	for _, tt := range tests {
		p, ok := FindProgram(testPrograms, tt.term)
		require.True(t, ok, tt.term)
		assert.Equal(t, tt.expected, p.Names[0], tt.term)
	}
}

func TestFindProgram_TokenPass(t *testing.T) {
	tests := []struct {
		term     string
		expected string
	}{
		// No synonym contains the whole term; a token settles it.
		{"que dias tem fondue?", "fondue"},
		{"vai ter música hoje?", "música ao vivo"},
		{"horário do café da manhã", "café da manhã"},
	}
	for _, tt := range tests {
		p, ok := FindProgram(testPrograms, tt.term)
		require.True(t, ok, tt.term)
		assert.Equal(t, tt.expected, p.Names[0], tt.term)
	}
}

func TestFindProgram_DeclarationOrderBreaksTies(t *testing.T) {
	// "executivo ou cafe" touches two programs; the first declared wins.
	p, ok := FindProgram(testPrograms, "executivo ou cafe")
	require.True(t, ok)
	assert.Equal(t, "executivo", p.Names[0])
}

func TestFindProgram_NoMatch(t *testing.T) {
	_, ok := FindProgram(testPrograms, "voces fazem entrega?")
	assert.False(t, ok)
}

func TestFindProgram_SynonymRoundTrip(t *testing.T) {
	for _, p := range testPrograms {
		for _, name := range p.Names {
			got, ok := FindProgram(testPrograms, name)
			require.True(t, ok, name)
			assert.Equal(t, p.Names[0], got.Names[0], name)
		}
	}
}

func TestFindInfoFact(t *testing.T) {
	f, ok := FindInfoFact(testFacts, "posso levar meu cachorro?")
	require.True(t, ok)
	assert.Equal(t, "pet", f.Names[0])

	f, ok = FindInfoFact(testFacts, "tem estacionamento perto?")
	require.True(t, ok)
	assert.Equal(t, "estacionamento", f.Names[0])

	_, ok = FindInfoFact(testFacts, "qual o telefone?")
	assert.False(t, ok)
}

func TestFindInfoFact_MorphologicalVariants(t *testing.T) {
	// The synonym contains the term, not the other way around.
	f, ok := FindInfoFact(testFacts, "vegetariana")
	require.True(t, ok)
	assert.Equal(t, "vegetariano", f.Names[0])

	f, ok = FindInfoFact(testFacts, "reservar")
	require.True(t, ok)
	assert.Equal(t, "reserva", f.Names[0])
}

func TestFindInfoFact_UnrelatedTermsStayUnmatched(t *testing.T) {
	_, ok := FindInfoFact(testFacts, "qual a programação de shows?")
	assert.False(t, ok)
}
