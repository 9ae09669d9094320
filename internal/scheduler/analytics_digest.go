package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/config"
	"github.com/vfg2006/ad-manager-api/internal/usecases/reporting"
)

// AnalyticsDigestConfig representa a configuração do agendador de digest
type AnalyticsDigestConfig struct {
	CronSchedule string
	Enabled      bool
}

// AnalyticsDigestService agenda a publicação periódica de um resumo das
// métricas do sistema e das campanhas nos logs. É um consumidor somente
// leitura do agregador; nunca grava contadores.
type AnalyticsDigestService struct {
	scheduler       *gocron.Scheduler
	config          AnalyticsDigestConfig
	campaignRepo    repository.CampaignRepository
	reporter        reporting.Reporter
	digestRunning   bool
	digestMutex     sync.Mutex
	lastDigestRunAt time.Time
}

// NewAnalyticsDigestService cria uma nova instância do serviço de digest
func NewAnalyticsDigestService(
	campaignRepo repository.CampaignRepository,
	reporter reporting.Reporter,
	appConfig *config.Config,
) *AnalyticsDigestService {
	digestConfig := AnalyticsDigestConfig{
		CronSchedule: appConfig.Digest.CronSchedule,
		Enabled:      appConfig.Digest.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
		"enabled":       digestConfig.Enabled,
	}).Info("Configuração do agendador de digest de analytics carregada")

	return &AnalyticsDigestService{
		scheduler:    scheduler,
		config:       digestConfig,
		campaignRepo: campaignRepo,
		reporter:     reporter,
	}
}

// Start inicia o agendador
func (s *AnalyticsDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Digest de analytics desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de digest de analytics")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runDigest()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar digest de analytics: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de digest de analytics")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow dispara a execução do digest fora do agendamento
func (s *AnalyticsDigestService) RunNow() {
	s.runDigest()
}

// LastRunAt retorna o horário da última execução concluída
func (s *AnalyticsDigestService) LastRunAt() time.Time {
	s.digestMutex.Lock()
	defer s.digestMutex.Unlock()
	return s.lastDigestRunAt
}

func (s *AnalyticsDigestService) runDigest() {
	s.digestMutex.Lock()
	if s.digestRunning {
		s.digestMutex.Unlock()
		logrus.Info("Digest de analytics já em andamento, ignorando")
		return
	}
	s.digestRunning = true
	s.digestMutex.Unlock()

	startTime := time.Now()

	defer func() {
		s.digestMutex.Lock()
		s.digestRunning = false
		s.lastDigestRunAt = time.Now()
		s.digestMutex.Unlock()
	}()

	system, err := s.reporter.SystemAnalytics()
	if err != nil {
		logrus.WithError(err).Error("Erro ao calcular métricas do sistema para o digest")
		return
	}

	logrus.WithFields(logrus.Fields{
		"total_ads":         system.TotalAds,
		"total_impressions": system.TotalImpressions,
		"total_clicks":      system.TotalClicks,
		"ctr":               system.CTR,
	}).Info("Digest de analytics: métricas do sistema")

	campaigns, err := s.campaignRepo.List()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar campanhas para o digest")
		return
	}

	for _, campaign := range campaigns {
		metrics, err := s.reporter.CampaignAnalytics(campaign.ID)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaign.ID).Warn("Erro ao calcular métricas da campanha para o digest")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"campaign_id":       metrics.CampaignID,
			"campaign_name":     metrics.CampaignName,
			"total_ads":         metrics.TotalAds,
			"total_impressions": metrics.TotalImpressions,
			"total_clicks":      metrics.TotalClicks,
			"ctr":               metrics.CTR,
		}).Info("Digest de analytics: métricas da campanha")
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Digest de analytics concluído")
}
