package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
)

// GetSystemAnalytics retorna as métricas agregadas de todo o sistema
func GetSystemAnalytics(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := service.SystemAnalytics()
		if err != nil {
			logrus.WithError(err).Error("failed to compute system analytics")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular métricas do sistema", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics); err != nil {
			logrus.WithError(err).Error("failed to encode analytics response")
		}
	}
}

// GetAdAnalytics retorna as métricas de um anúncio na janela recente
func GetAdAnalytics(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(adID) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do anúncio inválido", nil)
			return
		}

		metrics, err := service.AdAnalytics(adID)
		if err != nil {
			logrus.WithError(err).WithField("ad_id", adID).Error("failed to compute ad analytics")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular métricas do anúncio", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics); err != nil {
			logrus.WithError(err).Error("failed to encode analytics response")
		}
	}
}

// GetCampaignAnalytics retorna as métricas agregadas de uma campanha
func GetCampaignAnalytics(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(campaignID) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da campanha inválido", nil)
			return
		}

		metrics, err := service.CampaignAnalytics(campaignID)
		if err != nil {
			if errors.Is(err, reporting.ErrCampaignNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, "Campanha não encontrada", map[string]any{
					"campaign_id": campaignID,
				})
				return
			}

			logrus.WithError(err).WithField("campaign_id", campaignID).Error("failed to compute campaign analytics")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular métricas da campanha", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics); err != nil {
			logrus.WithError(err).Error("failed to encode analytics response")
		}
	}
}
