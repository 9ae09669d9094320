package reporting

import (
	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
)

type Reporter interface {
	AdAnalytics(adID string) (*domain.AdMetrics, error)
	CampaignAnalytics(campaignID string) (*domain.CampaignMetrics, error)
	SystemAnalytics() (*domain.SystemMetrics, error)
}

// Service agrega os contadores diários em métricas de CTR. Todas as
// operações são somente leitura; leituras concorrentes com incrementos
// em andamento podem observar o bucket do dia parcialmente atualizado,
// o que é aceitável.
type Service struct {
	adRepo       repository.AdRepository
	campaignRepo repository.CampaignRepository
	counterRepo  repository.DailyCounterRepository
	windowDays   int
}

func NewService(
	adRepo repository.AdRepository,
	campaignRepo repository.CampaignRepository,
	counterRepo repository.DailyCounterRepository,
	windowDays int,
) Reporter {
	return &Service{
		adRepo:       adRepo,
		campaignRepo: campaignRepo,
		counterRepo:  counterRepo,
		windowDays:   windowDays,
	}
}

// AdAnalytics soma os buckets mais recentes do anúncio (janela de
// windowDays dias, ordenados do mais novo para o mais antigo). Um
// anúncio sem histórico contribui com zeros, não com erro.
func (s *Service) AdAnalytics(adID string) (*domain.AdMetrics, error) {
	counters, err := s.counterRepo.GetRecentByAdID(adID, s.windowDays)
	if err != nil {
		return nil, err
	}

	var totalImpressions, totalClicks int64
	for _, counter := range counters {
		totalImpressions += counter.Impressions
		totalClicks += counter.Clicks
	}

	return &domain.AdMetrics{
		AdID:             adID,
		TotalImpressions: totalImpressions,
		TotalClicks:      totalClicks,
		CTR:              computeCTR(totalImpressions, totalClicks),
		DailyAnalytics:   counters,
	}, nil
}

// CampaignAnalytics soma todo o histórico dos anúncios atualmente
// vinculados à campanha, com a participação individual de cada anúncio
func (s *Service) CampaignAnalytics(campaignID string) (*domain.CampaignMetrics, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	ads, err := s.adRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	adIDs := make([]string, 0, len(ads))
	for _, ad := range ads {
		adIDs = append(adIDs, ad.ID)
	}

	totalsByAd, err := s.counterRepo.SumByAdIDs(adIDs)
	if err != nil {
		return nil, err
	}

	metrics := &domain.CampaignMetrics{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		TotalAds:     len(ads),
		AdsAnalytics: make([]domain.AdBreakdown, 0, len(ads)),
	}

	for _, ad := range ads {
		totals := totalsByAd[ad.ID]

		metrics.TotalImpressions += totals.Impressions
		metrics.TotalClicks += totals.Clicks
		metrics.AdsAnalytics = append(metrics.AdsAnalytics, domain.AdBreakdown{
			AdID:        ad.ID,
			AdTitle:     ad.Title,
			Impressions: totals.Impressions,
			Clicks:      totals.Clicks,
		})
	}

	metrics.CTR = computeCTR(metrics.TotalImpressions, metrics.TotalClicks)

	return metrics, nil
}

// SystemAnalytics soma todo o histórico de todos os anúncios,
// independente de status ou vínculo de campanha
func (s *Service) SystemAnalytics() (*domain.SystemMetrics, error) {
	totalAds, err := s.adRepo.CountAll()
	if err != nil {
		return nil, err
	}

	totals, err := s.counterRepo.SumAll()
	if err != nil {
		return nil, err
	}

	return &domain.SystemMetrics{
		TotalAds:         totalAds,
		TotalImpressions: totals.Impressions,
		TotalClicks:      totals.Clicks,
		CTR:              computeCTR(totals.Impressions, totals.Clicks),
	}, nil
}

// computeCTR calcula a taxa de cliques em percentual, com duas casas
// decimais. Sem impressões a taxa é zero, nunca divisão por zero.
func computeCTR(impressions, clicks int64) float64 {
	if impressions == 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(float64(clicks) / float64(impressions) * 100)
}
