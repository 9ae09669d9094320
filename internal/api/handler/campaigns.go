package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/internal/usecases/managing"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
)

type CreateCampaignRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AssignAdsRequest struct {
	AdIDs []string `json:"ad_ids"`
}

// ListCampaigns lista todas as campanhas com a contagem de anúncios
func ListCampaigns(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaigns, err := service.ListCampaigns()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar campanhas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar campanhas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(campaigns); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// CreateCampaign cria uma nova campanha
func CreateCampaign(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		startDate, err := parseRequiredDate(req.StartDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data de início inválida", nil)
			return
		}

		endDate, err := parseRequiredDate(req.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data de fim inválida", nil)
			return
		}

		campaign := &domain.Campaign{
			Name:      req.Name,
			StartDate: startDate,
			EndDate:   endDate,
		}

		created, err := service.CreateCampaign(campaign, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao criar campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// GetCampaign retorna uma campanha pelo ID
func GetCampaign(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da campanha inválido", nil)
			return
		}

		campaign, err := service.GetCampaign(id)
		if err != nil {
			handleManagingError(w, err, "Erro ao buscar campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(campaign); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// UpdateCampaign atualiza campos de uma campanha
func UpdateCampaign(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da campanha inválido", nil)
			return
		}

		var req domain.UpdateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = id

		updated, err := service.UpdateCampaign(&req, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao atualizar campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// UpdateCampaignStatus altera o status de uma campanha
func UpdateCampaignStatus(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da campanha inválido", nil)
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status inválido", map[string]any{
				"status": req.Status,
			})
			return
		}

		updated, err := service.UpdateCampaignStatus(id, status, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao atualizar status da campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// DeleteCampaign remove uma campanha. Os anúncios vinculados são
// desvinculados, não removidos.
func DeleteCampaign(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da campanha inválido", nil)
			return
		}

		if err := service.DeleteCampaign(id, claims.AdminID); err != nil {
			handleManagingError(w, err, "Erro ao remover campanha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// AssignAds vincula um conjunto de anúncios existentes a uma campanha
func AssignAds(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da campanha inválido", nil)
			return
		}

		var req AssignAdsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(req.AdIDs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lista de anúncios vazia", nil)
			return
		}

		for _, adID := range req.AdIDs {
			if !utils.IsValidUUID(adID) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de anúncio inválido na lista", map[string]any{
					"ad_id": adID,
				})
				return
			}
		}

		campaign, err := service.AssignAds(id, req.AdIDs, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao vincular anúncios à campanha")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(campaign); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}
