package managing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

const (
	adminID    = 1
	campaignID = "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
)

func validAd() *domain.Ad {
	return &domain.Ad{
		Title:     "Banner de Lançamento",
		CtaLink:   "https://example.com/promo",
		ImageURL:  "/uploads/banner.png",
		Placement: domain.PlacementHomepageBanner,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_CreateAd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Anúncio válido recebe UUID, status ACTIVE e gera auditoria", func(t *testing.T) {
		mockAdRepo := mocks.NewMockAdRepository(ctrl)
		mockActivityRepo := mocks.NewMockActivityLogRepository(ctrl)

		mockAdRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(ad *domain.Ad) (*domain.Ad, error) {
				assert.True(t, utils.IsValidUUID(ad.ID))
				assert.Equal(t, domain.StatusActive, ad.Status)
				assert.Equal(t, adminID, ad.AdminID)
				return ad, nil
			})
		mockActivityRepo.EXPECT().
			Log(gomock.Any()).
			DoAndReturn(func(entry *domain.ActivityLog) error {
				assert.Equal(t, "CREATE", entry.Action)
				assert.Equal(t, "ad", entry.Entity)
				return nil
			})

		service := &Service{adRepo: mockAdRepo, activityRepo: mockActivityRepo}

		created, err := service.CreateAd(validAd(), adminID)
		assert.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("Campos obrigatórios ausentes são rejeitados", func(t *testing.T) {
		service := &Service{}

		ad := validAd()
		ad.Title = ""

		created, err := service.CreateAd(ad, adminID)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
		assert.Nil(t, created)
	})

	t.Run("Janela de datas invertida é rejeitada", func(t *testing.T) {
		service := &Service{}

		ad := validAd()
		ad.StartDate = ad.EndDate.AddDate(0, 0, 1)

		created, err := service.CreateAd(ad, adminID)
		assert.ErrorIs(t, err, ErrInvalidDateWindow)
		assert.Nil(t, created)
	})

	t.Run("Falha de auditoria não derruba a criação", func(t *testing.T) {
		mockAdRepo := mocks.NewMockAdRepository(ctrl)
		mockActivityRepo := mocks.NewMockActivityLogRepository(ctrl)

		mockAdRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(ad *domain.Ad) (*domain.Ad, error) { return ad, nil })
		mockActivityRepo.EXPECT().
			Log(gomock.Any()).
			Return(assert.AnError)

		service := &Service{adRepo: mockAdRepo, activityRepo: mockActivityRepo}

		created, err := service.CreateAd(validAd(), adminID)
		assert.NoError(t, err)
		assert.NotNil(t, created)
	})
}

func TestService_UpdateAd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := validAd()
	existing.ID = "5f3c0e84-44b5-4e4f-93f4-b09b5a62f0a1"

	t.Run("Campos ausentes são preservados", func(t *testing.T) {
		mockAdRepo := mocks.NewMockAdRepository(ctrl)
		mockActivityRepo := mocks.NewMockActivityLogRepository(ctrl)

		current := *existing
		mockAdRepo.EXPECT().GetByID(existing.ID).Return(&current, nil)
		mockAdRepo.EXPECT().Update(gomock.Any()).Return(nil)
		mockActivityRepo.EXPECT().Log(gomock.Any()).Return(nil)

		service := &Service{adRepo: mockAdRepo, activityRepo: mockActivityRepo}

		newTitle := "Título Novo"
		updated, err := service.UpdateAd(&domain.UpdateAdRequest{
			ID:    existing.ID,
			Title: &newTitle,
		}, adminID)

		assert.NoError(t, err)
		assert.Equal(t, "Título Novo", updated.Title)
		assert.Equal(t, existing.CtaLink, updated.CtaLink)
		assert.Equal(t, existing.Placement, updated.Placement)
	})

	t.Run("Anúncio inexistente falha com ErrAdNotFound", func(t *testing.T) {
		mockAdRepo := mocks.NewMockAdRepository(ctrl)
		mockAdRepo.EXPECT().GetByID(existing.ID).Return(nil, nil)

		service := &Service{adRepo: mockAdRepo}

		updated, err := service.UpdateAd(&domain.UpdateAdRequest{ID: existing.ID}, adminID)
		assert.ErrorIs(t, err, ErrAdNotFound)
		assert.Nil(t, updated)
	})

	t.Run("Atualização que inverte a janela de datas é rejeitada", func(t *testing.T) {
		mockAdRepo := mocks.NewMockAdRepository(ctrl)

		current := *existing
		mockAdRepo.EXPECT().GetByID(existing.ID).Return(&current, nil)

		service := &Service{adRepo: mockAdRepo}

		badStart := existing.EndDate.AddDate(0, 0, 5)
		updated, err := service.UpdateAd(&domain.UpdateAdRequest{
			ID:        existing.ID,
			StartDate: &badStart,
		}, adminID)

		assert.ErrorIs(t, err, ErrInvalidDateWindow)
		assert.Nil(t, updated)
	})
}

func TestService_AssignAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	campaign := &domain.Campaign{ID: campaignID, Name: "Lançamento"}

	t.Run("Campanha inexistente falha com ErrCampaignNotFound", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockCampaignRepo.EXPECT().GetByID(campaignID).Return(nil, nil)

		service := &Service{campaignRepo: mockCampaignRepo}

		result, err := service.AssignAds(campaignID, []string{"ad-1"}, adminID)
		assert.ErrorIs(t, err, ErrCampaignNotFound)
		assert.Nil(t, result)
	})

	t.Run("Lista vazia não toca os anúncios", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockCampaignRepo.EXPECT().GetByID(campaignID).Return(campaign, nil)

		service := &Service{campaignRepo: mockCampaignRepo}

		result, err := service.AssignAds(campaignID, nil, adminID)
		assert.NoError(t, err)
		assert.Equal(t, campaign, result)
	})

	t.Run("Vínculo delega ao repositório e recarrega a campanha", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockAdRepo := mocks.NewMockAdRepository(ctrl)
		mockActivityRepo := mocks.NewMockActivityLogRepository(ctrl)

		adIDs := []string{"ad-1", "ad-2"}

		mockCampaignRepo.EXPECT().GetByID(campaignID).Return(campaign, nil)
		mockAdRepo.EXPECT().AssignCampaign(adIDs, campaignID).Return(nil)
		mockActivityRepo.EXPECT().Log(gomock.Any()).Return(nil)

		reloaded := *campaign
		reloaded.AdCount = 2
		mockCampaignRepo.EXPECT().GetByID(campaignID).Return(&reloaded, nil)

		service := &Service{
			adRepo:       mockAdRepo,
			campaignRepo: mockCampaignRepo,
			activityRepo: mockActivityRepo,
		}

		result, err := service.AssignAds(campaignID, adIDs, adminID)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.AdCount)
	})
}
