package serving

import (
	"time"

	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

// Limites de anúncios por requisição, aplicados na borda da API
const (
	MinAdsPerRequest     = 1
	MaxAdsPerRequest     = 10
	DefaultAdsPerRequest = 1
)

type AdServer interface {
	GetAds(placement *domain.Placement, limit int) ([]domain.AdSummary, error)
}

type Service struct {
	adRepo repository.AdRepository
	now    func() time.Time
}

func NewService(adRepo repository.AdRepository) AdServer {
	return &Service{
		adRepo: adRepo,
		now:    time.Now,
	}
}

// GetAds retorna até limit anúncios elegíveis para o placement informado
// (ou para qualquer placement, quando nil). Conjunto elegível vazio
// resulta em lista vazia, não em erro.
func (s *Service) GetAds(placement *domain.Placement, limit int) ([]domain.AdSummary, error) {
	eligible, err := s.adRepo.FindEligible(s.now(), placement)
	if err != nil {
		return nil, err
	}

	return pickRandom(eligible, limit), nil
}
