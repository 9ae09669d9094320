package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Zero permanece zero", 0, 0},
		{"Dízima trunca em duas casas", 1.0 / 3.0 * 100, 33.33},
		{"Meio arredonda para longe de zero", 12.345, 12.35},
		{"Negativo arredonda para longe de zero", -12.345, -12.35},
		{"Valor exato não muda", 12.5, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundWithTwoDecimalPlace(tt.input))
		})
	}
}

func TestDayBucket(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		instant  time.Time
		location *time.Location
		expected time.Time
	}{
		{
			name:     "Fim do dia UTC trunca para a meia-noite do mesmo dia",
			instant:  time.Date(2025, 6, 15, 23, 59, 59, 999999999, time.UTC),
			location: time.UTC,
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Meia-noite exata permanece no próprio bucket",
			instant:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			location: time.UTC,
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Madrugada UTC cai no dia anterior em São Paulo",
			instant:  time.Date(2025, 6, 16, 1, 0, 0, 0, time.UTC),
			location: saoPaulo,
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, saoPaulo),
		},
		{
			name:     "Tarde em São Paulo permanece no mesmo dia",
			instant:  time.Date(2025, 6, 15, 18, 0, 0, 0, saoPaulo),
			location: saoPaulo,
			expected: time.Date(2025, 6, 15, 0, 0, 0, 0, saoPaulo),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DayBucket(tt.instant, tt.location)
			assert.True(t, tt.expected.Equal(result),
				"esperado %s, obtido %s", tt.expected, result)
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("5f3c0e84-44b5-4e4f-93f4-b09b5a62f0a1"))
	assert.False(t, IsValidUUID("nao-e-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey()
	assert.NoError(t, err)
	assert.Len(t, key, 32)

	other, err := GenerateAPIKey()
	assert.NoError(t, err)
	assert.NotEqual(t, key, other)
}
