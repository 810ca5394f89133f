package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Sábado", "sabado"},
		{"CAFÉ DA MANHÃ", "cafe da manha"},
		{"  música ao vivo  ", "musica ao vivo"},
		{"fondue", "fondue"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Normalize(tt.in), tt.in)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"que", "dias", "tem", "fondue"},
		Tokens("Que dias tem fondue?"))
	assert.Equal(t, []string{"musica", "vivo"},
		Tokens("música ao vivo"), "two-letter words are dropped")
	assert.Empty(t, Tokens("eu o de"))
}
