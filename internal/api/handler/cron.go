package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/scheduler"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
)

// RunAnalyticsDigest dispara manualmente o digest de métricas
func RunAnalyticsDigest(digest *scheduler.AnalyticsDigestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAnalyticsDigest")

		if _, ok := adminFromContext(r); !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if digest == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de digest não disponível", nil)
			return
		}

		digest.RunNow()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"status":      "triggered",
			"last_run_at": digest.LastRunAt().Format(time.RFC3339),
		}); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}
