package serving

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_GetAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	placement := domain.PlacementHomepageBanner

	tests := []struct {
		name      string
		placement *domain.Placement
		limit     int
		setup     func(repo *mocks.MockAdRepository)
		validate  func(t *testing.T, ads []domain.AdSummary, err error)
	}{
		{
			name:      "Conjunto elegível vazio resulta em lista vazia, não em erro",
			placement: nil,
			limit:     3,
			setup: func(repo *mocks.MockAdRepository) {
				repo.EXPECT().
					FindEligible(now, gomock.Nil()).
					Return([]domain.AdSummary{}, nil)
			},
			validate: func(t *testing.T, ads []domain.AdSummary, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, ads)
				assert.Empty(t, ads)
			},
		},
		{
			name:      "Filtro de placement é repassado ao repositório",
			placement: &placement,
			limit:     1,
			setup: func(repo *mocks.MockAdRepository) {
				repo.EXPECT().
					FindEligible(now, &placement).
					Return([]domain.AdSummary{
						{ID: "ad-1", Placement: placement},
					}, nil)
			},
			validate: func(t *testing.T, ads []domain.AdSummary, err error) {
				assert.NoError(t, err)
				assert.Len(t, ads, 1)
				assert.Equal(t, "ad-1", ads[0].ID)
			},
		},
		{
			name:      "Erro do repositório é propagado",
			placement: nil,
			limit:     1,
			setup: func(repo *mocks.MockAdRepository) {
				repo.EXPECT().
					FindEligible(now, gomock.Nil()).
					Return(nil, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, ads []domain.AdSummary, err error) {
				assert.Error(t, err)
				assert.Nil(t, ads)
			},
		},
		{
			name:      "Seleção respeita o limite com conjunto maior",
			placement: nil,
			limit:     2,
			setup: func(repo *mocks.MockAdRepository) {
				repo.EXPECT().
					FindEligible(now, gomock.Nil()).
					Return(makeAds(8), nil)
			},
			validate: func(t *testing.T, ads []domain.AdSummary, err error) {
				assert.NoError(t, err)
				assert.Len(t, ads, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdRepo := mocks.NewMockAdRepository(ctrl)
			tt.setup(mockAdRepo)

			service := &Service{
				adRepo: mockAdRepo,
				now:    func() time.Time { return now },
			}

			ads, err := service.GetAds(tt.placement, tt.limit)
			tt.validate(t, ads, err)
		})
	}
}
