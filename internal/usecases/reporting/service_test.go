package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const (
	adID       = "5f3c0e84-44b5-4e4f-93f4-b09b5a62f0a1"
	campaignID = "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
)

func TestComputeCTR(t *testing.T) {
	tests := []struct {
		name        string
		impressions int64
		clicks      int64
		expected    float64
	}{
		{
			name:        "Zero impressões resulta em CTR zero, nunca divisão por zero",
			impressions: 0,
			clicks:      5,
			expected:    0,
		},
		{
			name:        "Um clique em três impressões arredonda para 33.33",
			impressions: 3,
			clicks:      1,
			expected:    33.33,
		},
		{
			name:        "Dois cliques em três impressões arredonda para 66.67",
			impressions: 3,
			clicks:      2,
			expected:    66.67,
		},
		{
			name:        "Clique em toda impressão resulta em 100",
			impressions: 50,
			clicks:      50,
			expected:    100,
		},
		{
			name:        "Sem cliques resulta em zero",
			impressions: 1000,
			clicks:      0,
			expected:    0,
		},
		{
			name:        "Meio ponto percentual arredonda para cima",
			impressions: 1000,
			clicks:      125,
			expected:    12.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, computeCTR(tt.impressions, tt.clicks))
		})
	}
}

func TestService_AdAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := func(offset int) time.Time {
		return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	}

	t.Run("Janela de 30 dias é repassada ao repositório e somada", func(t *testing.T) {
		mockCounterRepo := mocks.NewMockDailyCounterRepository(ctrl)
		mockCounterRepo.EXPECT().
			GetRecentByAdID(adID, 30).
			Return([]*domain.DailyCounter{
				{AdID: adID, Date: day(0), Impressions: 100, Clicks: 10},
				{AdID: adID, Date: day(1), Impressions: 200, Clicks: 20},
				{AdID: adID, Date: day(2), Impressions: 100, Clicks: 3},
			}, nil)

		service := &Service{
			counterRepo: mockCounterRepo,
			windowDays:  30,
		}

		metrics, err := service.AdAnalytics(adID)
		assert.NoError(t, err)
		assert.Equal(t, adID, metrics.AdID)
		assert.Equal(t, int64(400), metrics.TotalImpressions)
		assert.Equal(t, int64(33), metrics.TotalClicks)
		assert.Equal(t, 8.25, metrics.CTR)
		assert.Len(t, metrics.DailyAnalytics, 3)
	})

	t.Run("Anúncio sem histórico contribui com zeros, não com erro", func(t *testing.T) {
		mockCounterRepo := mocks.NewMockDailyCounterRepository(ctrl)
		mockCounterRepo.EXPECT().
			GetRecentByAdID(adID, 30).
			Return([]*domain.DailyCounter{}, nil)

		service := &Service{
			counterRepo: mockCounterRepo,
			windowDays:  30,
		}

		metrics, err := service.AdAnalytics(adID)
		assert.NoError(t, err)
		assert.Zero(t, metrics.TotalImpressions)
		assert.Zero(t, metrics.TotalClicks)
		assert.Zero(t, metrics.CTR)
	})
}

func TestService_CampaignAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Campanha inexistente falha com ErrCampaignNotFound", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockCampaignRepo.EXPECT().GetByID(campaignID).Return(nil, nil)

		service := &Service{campaignRepo: mockCampaignRepo}

		metrics, err := service.CampaignAnalytics(campaignID)
		assert.ErrorIs(t, err, ErrCampaignNotFound)
		assert.Nil(t, metrics)
	})

	t.Run("Campanha sem anúncios resulta em métricas zeradas", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockAdRepo := mocks.NewMockAdRepository(ctrl)
		mockCounterRepo := mocks.NewMockDailyCounterRepository(ctrl)

		mockCampaignRepo.EXPECT().
			GetByID(campaignID).
			Return(&domain.Campaign{ID: campaignID, Name: "Campanha Vazia"}, nil)
		mockAdRepo.EXPECT().ListByCampaign(campaignID).Return([]*domain.Ad{}, nil)
		mockCounterRepo.EXPECT().
			SumByAdIDs([]string{}).
			Return(map[string]domain.CounterTotals{}, nil)

		service := &Service{
			adRepo:       mockAdRepo,
			campaignRepo: mockCampaignRepo,
			counterRepo:  mockCounterRepo,
		}

		metrics, err := service.CampaignAnalytics(campaignID)
		assert.NoError(t, err)
		assert.Equal(t, "Campanha Vazia", metrics.CampaignName)
		assert.Zero(t, metrics.TotalAds)
		assert.Zero(t, metrics.TotalImpressions)
		assert.Zero(t, metrics.TotalClicks)
		assert.Zero(t, metrics.CTR)
		assert.Empty(t, metrics.AdsAnalytics)
	})

	t.Run("Métricas somam todos os anúncios da campanha com participação individual", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockAdRepo := mocks.NewMockAdRepository(ctrl)
		mockCounterRepo := mocks.NewMockDailyCounterRepository(ctrl)

		mockCampaignRepo.EXPECT().
			GetByID(campaignID).
			Return(&domain.Campaign{ID: campaignID, Name: "Lançamento"}, nil)
		mockAdRepo.EXPECT().
			ListByCampaign(campaignID).
			Return([]*domain.Ad{
				{ID: "ad-1", Title: "Banner"},
				{ID: "ad-2", Title: "Sidebar"},
			}, nil)
		mockCounterRepo.EXPECT().
			SumByAdIDs([]string{"ad-1", "ad-2"}).
			Return(map[string]domain.CounterTotals{
				"ad-1": {Impressions: 300, Clicks: 30},
				"ad-2": {Impressions: 100, Clicks: 3},
			}, nil)

		service := &Service{
			adRepo:       mockAdRepo,
			campaignRepo: mockCampaignRepo,
			counterRepo:  mockCounterRepo,
		}

		metrics, err := service.CampaignAnalytics(campaignID)
		assert.NoError(t, err)
		assert.Equal(t, 2, metrics.TotalAds)
		assert.Equal(t, int64(400), metrics.TotalImpressions)
		assert.Equal(t, int64(33), metrics.TotalClicks)
		assert.Equal(t, 8.25, metrics.CTR)
		assert.Len(t, metrics.AdsAnalytics, 2)
		assert.Equal(t, int64(300), metrics.AdsAnalytics[0].Impressions)
		assert.Equal(t, "Sidebar", metrics.AdsAnalytics[1].AdTitle)
	})
}

func TestService_SystemAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockCounterRepo := mocks.NewMockDailyCounterRepository(ctrl)

	// Duas leituras consecutivas sem novos eventos devem ser idênticas
	mockAdRepo.EXPECT().CountAll().Return(7, nil).Times(2)
	mockCounterRepo.EXPECT().
		SumAll().
		Return(domain.CounterTotals{Impressions: 1000, Clicks: 125}, nil).
		Times(2)

	service := &Service{
		adRepo:      mockAdRepo,
		counterRepo: mockCounterRepo,
	}

	first, err := service.SystemAnalytics()
	assert.NoError(t, err)

	second, err := service.SystemAnalytics()
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 7, first.TotalAds)
	assert.Equal(t, int64(1000), first.TotalImpressions)
	assert.Equal(t, int64(125), first.TotalClicks)
	assert.Equal(t, 12.5, first.CTR)
}
