package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/internal/usecases/serving"
	"github.com/vfg2006/ad-manager-api/internal/usecases/tracking"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
)

// Rotas públicas de veiculação usam jsoniter por serem o caminho quente da API
var json = jsoniter.ConfigCompatibleWithStandardLibrary

type TrackRequest struct {
	AdID string `json:"ad_id"`
}

type TrackResponse struct {
	Status string `json:"status"`
}

// GetAds retorna uma seleção aleatória de anúncios elegíveis.
// Query params: placement (opcional), limit (opcional, 1 a 10, default 1).
func GetAds(service serving.AdServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var placement *domain.Placement

		if raw := r.URL.Query().Get("placement"); raw != "" {
			parsed, err := domain.ParsePlacement(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Placement inválido", map[string]any{
					"placement": raw,
				})
				return
			}
			placement = &parsed
		}

		limit := serving.DefaultAdsPerRequest
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < serving.MinAdsPerRequest || parsed > serving.MaxAdsPerRequest {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limit fora do intervalo permitido", map[string]any{
					"limit": raw,
					"min":   serving.MinAdsPerRequest,
					"max":   serving.MaxAdsPerRequest,
				})
				return
			}
			limit = parsed
		}

		ads, err := service.GetAds(placement, limit)
		if err != nil {
			logrus.WithError(err).Error("failed to select ads")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao selecionar anúncios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ads); err != nil {
			logrus.WithError(err).Error("failed to encode ads response")
		}
	}
}

// TrackImpression registra uma impressão para o anúncio informado
func TrackImpression(service tracking.Recorder) http.HandlerFunc {
	return trackEvent(service.RecordImpression, "impression")
}

// TrackClick registra um clique para o anúncio informado
func TrackClick(service tracking.Recorder) http.HandlerFunc {
	return trackEvent(service.RecordClick, "click")
}

func trackEvent(record func(adID string) error, event string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TrackRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.AdID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do anúncio não fornecido", nil)
			return
		}

		if !utils.IsValidUUID(req.AdID) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do anúncio inválido", map[string]any{
				"ad_id": req.AdID,
			})
			return
		}

		if err := record(req.AdID); err != nil {
			if errors.Is(err, tracking.ErrAdNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrAdNotFound, "Anúncio não encontrado", map[string]any{
					"ad_id": req.AdID,
				})
				return
			}

			logrus.WithError(err).WithFields(logrus.Fields{
				"ad_id": req.AdID,
				"event": event,
			}).Error("failed to record tracking event")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar evento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(TrackResponse{Status: "recorded"}); err != nil {
			logrus.WithError(err).Error("failed to encode tracking response")
		}
	}
}
