package tracking

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const adID = "5f3c0e84-44b5-4e4f-93f4-b09b5a62f0a1"

func TestService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		location *time.Location
		now      time.Time
		record   func(service Recorder) error
		setup    func(adRepo *mocks.MockAdRepository, counterRepo *mocks.MockDailyCounterRepository)
		validate func(t *testing.T, err error)
	}{
		{
			name:     "Impressão cai no bucket da meia-noite UTC",
			location: time.UTC,
			now:      time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
			record:   func(service Recorder) error { return service.RecordImpression(adID) },
			setup: func(adRepo *mocks.MockAdRepository, counterRepo *mocks.MockDailyCounterRepository) {
				adRepo.EXPECT().GetByID(adID).Return(&domain.Ad{ID: adID}, nil)
				counterRepo.EXPECT().
					IncrementDaily(adID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), domain.EventImpression).
					Return(nil)
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:     "Clique no início do dia UTC cai no dia anterior em São Paulo",
			location: saoPaulo,
			now:      time.Date(2025, 6, 16, 1, 0, 0, 0, time.UTC),
			record:   func(service Recorder) error { return service.RecordClick(adID) },
			setup: func(adRepo *mocks.MockAdRepository, counterRepo *mocks.MockDailyCounterRepository) {
				adRepo.EXPECT().GetByID(adID).Return(&domain.Ad{ID: adID}, nil)
				counterRepo.EXPECT().
					IncrementDaily(adID, time.Date(2025, 6, 15, 0, 0, 0, 0, saoPaulo), domain.EventClick).
					Return(nil)
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:     "Anúncio desconhecido falha com ErrAdNotFound sem tocar contadores",
			location: time.UTC,
			now:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			record:   func(service Recorder) error { return service.RecordImpression(adID) },
			setup: func(adRepo *mocks.MockAdRepository, counterRepo *mocks.MockDailyCounterRepository) {
				adRepo.EXPECT().GetByID(adID).Return(nil, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAdNotFound)
			},
		},
		{
			name:     "Erro na busca do anúncio é propagado",
			location: time.UTC,
			now:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			record:   func(service Recorder) error { return service.RecordClick(adID) },
			setup: func(adRepo *mocks.MockAdRepository, counterRepo *mocks.MockDailyCounterRepository) {
				adRepo.EXPECT().GetByID(adID).Return(nil, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrAdNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdRepo := mocks.NewMockAdRepository(ctrl)
			mockCounterRepo := mocks.NewMockDailyCounterRepository(ctrl)
			tt.setup(mockAdRepo, mockCounterRepo)

			service := &Service{
				adRepo:      mockAdRepo,
				counterRepo: mockCounterRepo,
				location:    tt.location,
				now:         func() time.Time { return tt.now },
			}

			tt.validate(t, tt.record(service))
		})
	}
}

// Eventos em dias distintos criam buckets distintos para o mesmo anúncio
func TestService_Record_DiasDistintos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockCounterRepo := mocks.NewMockDailyCounterRepository(ctrl)

	current := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)

	service := &Service{
		adRepo:      mockAdRepo,
		counterRepo: mockCounterRepo,
		location:    time.UTC,
		now:         func() time.Time { return current },
	}

	mockAdRepo.EXPECT().GetByID(adID).Return(&domain.Ad{ID: adID}, nil).Times(2)
	mockCounterRepo.EXPECT().
		IncrementDaily(adID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), domain.EventImpression).
		Return(nil)
	mockCounterRepo.EXPECT().
		IncrementDaily(adID, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), domain.EventImpression).
		Return(nil)

	assert.NoError(t, service.RecordImpression(adID))

	current = current.Add(2 * time.Hour)
	assert.NoError(t, service.RecordImpression(adID))
}

// fakeCounterRepo acumula incrementos em memória, protegido por mutex,
// para verificar que nenhum evento concorrente se perde.
type fakeCounterRepo struct {
	mu          sync.Mutex
	impressions map[string]int64
	clicks      map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{
		impressions: make(map[string]int64),
		clicks:      make(map[string]int64),
	}
}

func (f *fakeCounterRepo) IncrementDaily(adID string, day time.Time, kind domain.EventKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := adID + "|" + day.Format("2006-01-02")
	if kind == domain.EventImpression {
		f.impressions[key]++
	} else {
		f.clicks[key]++
	}
	return nil
}

func (f *fakeCounterRepo) GetRecentByAdID(string, int) ([]*domain.DailyCounter, error) {
	return nil, nil
}

func (f *fakeCounterRepo) SumByAdIDs([]string) (map[string]domain.CounterTotals, error) {
	return nil, nil
}

func (f *fakeCounterRepo) SumAll() (domain.CounterTotals, error) {
	return domain.CounterTotals{}, nil
}

func TestService_Record_Concorrencia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const goroutines = 100

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockAdRepo.EXPECT().GetByID(adID).Return(&domain.Ad{ID: adID}, nil).Times(goroutines)

	counterRepo := newFakeCounterRepo()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	service := &Service{
		adRepo:      mockAdRepo,
		counterRepo: counterRepo,
		location:    time.UTC,
		now:         func() time.Time { return now },
	}

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, service.RecordImpression(adID))
		}()
	}
	wg.Wait()

	key := adID + "|2025-06-15"
	assert.Equal(t, int64(goroutines), counterRepo.impressions[key])
	assert.Zero(t, counterRepo.clicks[key])
}
