package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/api/handler"
	"github.com/vfg2006/ad-manager-api/internal/api/handler/router"
	"github.com/vfg2006/ad-manager-api/internal/config"
	"github.com/vfg2006/ad-manager-api/internal/scheduler"
	"github.com/vfg2006/ad-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-manager-api/internal/usecases/managing"
	"github.com/vfg2006/ad-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-manager-api/internal/usecases/serving"
	"github.com/vfg2006/ad-manager-api/internal/usecases/tracking"
	"github.com/vfg2006/ad-manager-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	servingService serving.AdServer,
	trackingService tracking.Recorder,
	reportingService reporting.Reporter,
	managingService managing.Manager,
	authenticator authenticating.Authenticator,
	apiKeyRepo repository.APIKeyRepository,
	digestService *scheduler.AnalyticsDigestService,
) (*Server, error) {
	limiter := middleware.NewRateLimiter(cfg.Serving)
	uploader := handler.NewImageUploader(cfg.Upload)

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Serving(servingService, trackingService, apiKeyRepo, limiter)...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.APIKeys(authenticator)...),
		router.WithRoutes(handler.Ads(managingService, uploader)...),
		router.WithRoutes(handler.Campaigns(managingService)...),
		router.WithRoutes(handler.Analytics(reportingService)...),
		router.WithRoutes(handler.Cron(digestService)...),
	)

	// Expõe os criativos enviados pelo painel
	rt.ServeFiles(cfg.Upload.PublicPath+"/*filepath", http.Dir(cfg.Upload.Dir))

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
