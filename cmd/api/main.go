package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/api"
	"github.com/vfg2006/ad-manager-api/internal/config"
	"github.com/vfg2006/ad-manager-api/internal/scheduler"
	"github.com/vfg2006/ad-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-manager-api/internal/usecases/mailing"
	"github.com/vfg2006/ad-manager-api/internal/usecases/managing"
	"github.com/vfg2006/ad-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-manager-api/internal/usecases/serving"
	"github.com/vfg2006/ad-manager-api/internal/usecases/tracking"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	adRepo := repository.NewAdRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	counterRepo := repository.NewDailyCounterRepository(pgConn)
	adminRepo := repository.NewAdminRepository(pgConn)
	apiKeyRepo := repository.NewAPIKeyRepository(pgConn)
	activityRepo := repository.NewActivityLogRepository(pgConn)

	mailer := mailing.NewService(cfg.Mail)
	authenticator := authenticating.NewService(adminRepo, apiKeyRepo, mailer, cfg)

	location, err := cfg.Analytics.Location()
	if err != nil {
		logrus.Fatal(err)
	}

	servingService := serving.NewService(adRepo)
	trackingService := tracking.NewService(adRepo, counterRepo, location)
	reportingService := reporting.NewService(adRepo, campaignRepo, counterRepo, cfg.Analytics.WindowDays)
	managingService := managing.NewService(adRepo, campaignRepo, activityRepo)

	digestService := scheduler.NewAnalyticsDigestService(campaignRepo, reportingService, cfg)

	if err := digestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de digest de analytics")
	} else {
		logrus.Info("Agendador de digest de analytics iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		servingService,
		trackingService,
		reportingService,
		managingService,
		authenticator,
		apiKeyRepo,
		digestService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetOutput(os.Stdout)
}

// pgconn abre a conexão com o Postgres e aborta a aplicação em caso de erro
func pgconn(ctx context.Context, cfg config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}

	logrus.Info("Conexão com o banco de dados estabelecida")
	return conn
}
