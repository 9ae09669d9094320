package utils

import "math"

// RoundWithTwoDecimalPlace arredonda para duas casas decimais.
// math.Round arredonda o meio para longe de zero, que é o comportamento
// esperado nas taxas de clique expostas pela API.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}
