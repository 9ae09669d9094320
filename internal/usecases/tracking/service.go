package tracking

import (
	"time"

	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
)

type Recorder interface {
	RecordImpression(adID string) error
	RecordClick(adID string) error
}

// Service registra eventos de engajamento como contadores diários.
// O bucket do dia é calculado no fuso de referência configurado; o
// incremento em si é delegado ao upsert atômico do repositório, de modo
// que eventos concorrentes para o mesmo (anúncio, dia) nunca se perdem.
type Service struct {
	adRepo      repository.AdRepository
	counterRepo repository.DailyCounterRepository
	location    *time.Location
	now         func() time.Time
}

func NewService(
	adRepo repository.AdRepository,
	counterRepo repository.DailyCounterRepository,
	location *time.Location,
) Recorder {
	return &Service{
		adRepo:      adRepo,
		counterRepo: counterRepo,
		location:    location,
		now:         time.Now,
	}
}

func (s *Service) RecordImpression(adID string) error {
	return s.record(adID, domain.EventImpression)
}

func (s *Service) RecordClick(adID string) error {
	return s.record(adID, domain.EventClick)
}

// record valida que o anúncio existe antes de criar o contador. Um
// identificador bem formado mas desconhecido falha com ErrAdNotFound em
// vez de criar linhas órfãs de analytics.
func (s *Service) record(adID string, kind domain.EventKind) error {
	ad, err := s.adRepo.GetByID(adID)
	if err != nil {
		return err
	}

	if ad == nil {
		return ErrAdNotFound
	}

	day := utils.DayBucket(s.now(), s.location)

	return s.counterRepo.IncrementDaily(adID, day, kind)
}
