package serving

import (
	"math/rand"

	"github.com/vfg2006/ad-manager-api/internal/domain"
)

// pickRandom devolve até limit anúncios do conjunto elegível, por
// amostragem uniforme sem reposição (embaralhamento de Fisher–Yates
// sobre uma cópia; a entrada nunca é mutada). Um "sort por comparador
// aleatório" não produz permutações uniformes e não deve ser usado aqui.
func pickRandom(eligible []domain.AdSummary, limit int) []domain.AdSummary {
	if len(eligible) == 0 {
		return []domain.AdSummary{}
	}

	shuffled := make([]domain.AdSummary, len(eligible))
	copy(shuffled, eligible)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if limit > len(shuffled) {
		limit = len(shuffled)
	}

	return shuffled[:limit]
}
