package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/internal/usecases/managing"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ad-manager-api/pkg/middleware"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
)

type CreateAdRequest struct {
	Title      string  `json:"title"`
	CtaLink    string  `json:"cta_link"`
	ImageURL   string  `json:"image_url"`
	Placement  string  `json:"placement"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	CampaignID *string `json:"campaign_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// adminFromContext recupera as claims do administrador autenticado
func adminFromContext(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyAdmin).(*domain.Claims)
	return claims, ok
}

// ListAds lista os anúncios do painel. Query param mine=true restringe
// aos anúncios criados pelo administrador logado.
func ListAds(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var adminID *int
		if r.URL.Query().Get("mine") == "true" {
			adminID = &claims.AdminID
		}

		ads, err := service.ListAds(adminID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar anúncios")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar anúncios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ads); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// CreateAd cria um novo anúncio. Aceita JSON ou multipart/form-data com
// o arquivo de imagem no campo "image".
func CreateAd(service managing.Manager, uploader *ImageUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req CreateAdRequest

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			r.Body = http.MaxBytesReader(w, r.Body, uploader.MaxBytes())
			if err := r.ParseMultipartForm(uploader.MaxBytes()); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao processar formulário", nil)
				return
			}

			req = CreateAdRequest{
				Title:     r.FormValue("title"),
				CtaLink:   r.FormValue("cta_link"),
				Placement: r.FormValue("placement"),
				StartDate: r.FormValue("start_date"),
				EndDate:   r.FormValue("end_date"),
			}
			if campaignID := r.FormValue("campaign_id"); campaignID != "" {
				req.CampaignID = &campaignID
			}

			file, header, err := r.FormFile("image")
			if err == nil {
				defer file.Close()

				imageURL, err := uploader.Save(file, header)
				if err != nil {
					logrus.WithError(err).Warn("Erro ao salvar imagem do anúncio")
					apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
					return
				}
				req.ImageURL = imageURL
			}
		} else {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		ad, errCode, errMsg := buildAd(&req)
		if errCode != "" {
			apiErrors.WriteError(w, errCode, errMsg, nil)
			return
		}

		created, err := service.CreateAd(ad, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao criar anúncio")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// GetAd retorna um anúncio pelo ID
func GetAd(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do anúncio inválido", nil)
			return
		}

		ad, err := service.GetAd(id)
		if err != nil {
			handleManagingError(w, err, "Erro ao buscar anúncio")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ad); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// UpdateAd atualiza campos de um anúncio. Campos ausentes são preservados.
func UpdateAd(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do anúncio inválido", nil)
			return
		}

		var req domain.UpdateAdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = id

		if req.Placement != nil {
			if _, err := domain.ParsePlacement(string(*req.Placement)); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Placement inválido", nil)
				return
			}
		}

		updated, err := service.UpdateAd(&req, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao atualizar anúncio")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// UpdateAdStatus altera o status de um anúncio (ACTIVE, PAUSED, ARCHIVED)
func UpdateAdStatus(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do anúncio inválido", nil)
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

		updated, err := service.UpdateAdStatus(id, status, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao atualizar status do anúncio")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// DeleteAd remove um anúncio e seus contadores associados
func DeleteAd(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do anúncio inválido", nil)
			return
		}

		if err := service.DeleteAd(id, claims.AdminID); err != nil {
			handleManagingError(w, err, "Erro ao remover anúncio")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// UploadAdImage recebe o criativo via multipart e atualiza o anúncio
func UploadAdImage(service managing.Manager, uploader *ImageUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adminFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if !utils.IsValidUUID(id) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do anúncio inválido", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, uploader.MaxBytes())
		if err := r.ParseMultipartForm(uploader.MaxBytes()); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao processar formulário", nil)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo de imagem não fornecido", nil)
			return
		}
		defer file.Close()

		imageURL, err := uploader.Save(file, header)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao salvar imagem do anúncio")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		updated, err := service.UpdateAd(&domain.UpdateAdRequest{ID: id, ImageURL: &imageURL}, claims.AdminID)
		if err != nil {
			handleManagingError(w, err, "Erro ao atualizar imagem do anúncio")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(updated); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// buildAd valida os campos da requisição e monta a entidade
func buildAd(req *CreateAdRequest) (*domain.Ad, string, string) {
	placement, err := domain.ParsePlacement(req.Placement)
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, "Placement inválido"
	}

	startDate, err := parseRequiredDate(req.StartDate)
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, "Data de início inválida"
	}

	endDate, err := parseRequiredDate(req.EndDate)
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, "Data de fim inválida"
	}

	if req.CampaignID != nil && !utils.IsValidUUID(*req.CampaignID) {
		return nil, apiErrors.ErrInvalidFormat, "ID da campanha inválido"
	}

	return &domain.Ad{
		Title:      req.Title,
		CtaLink:    req.CtaLink,
		ImageURL:   req.ImageURL,
		Placement:  placement,
		StartDate:  startDate,
		EndDate:    endDate,
		CampaignID: req.CampaignID,
	}, "", ""
}

func parseRequiredDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("data obrigatória ausente")
	}

	parsed, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}

	return *parsed, nil
}

// handleManagingError traduz erros do gerenciamento para a resposta HTTP
func handleManagingError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, managing.ErrAdNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAdNotFound, "Anúncio não encontrado", nil)

	case errors.Is(err, managing.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, "Campanha não encontrada", nil)

	case errors.Is(err, managing.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados obrigatórios ausentes", nil)

	case errors.Is(err, managing.ErrInvalidDateWindow):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "A data de início não pode ser posterior à data de fim", nil)

	default:
		logrus.WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
