package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
)

type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// ListAPIKeys lista as chaves de API emitidas para as rotas públicas
func ListAPIKeys(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys, err := service.ListAPIKeys()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar chaves de API")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar chaves de API", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(keys); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// CreateAPIKey emite uma nova chave de API. A chave só é exibida na
// resposta desta requisição.
func CreateAPIKey(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAPIKeyRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		key, err := service.CreateAPIKey(req.Name)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(key); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// RevokeAPIKey desativa uma chave de API. Clientes usando a chave
// revogada passam a receber 401 nas rotas públicas.
func RevokeAPIKey(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")

		id, err := strconv.Atoi(idStr)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da chave inválido", nil)
			return
		}

		if err := service.RevokeAPIKey(id); err != nil {
			logrus.WithError(err).WithField("api_key_id", id).Error("Erro ao revogar chave de API")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao revogar chave de API", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
