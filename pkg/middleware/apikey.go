package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
)

// APIKeyAuth valida o header X-Api-Key contra as chaves ativas no banco.
// É aplicado por rota, apenas na superfície pública de veiculação.
func APIKeyAuth(apiKeyRepo repository.APIKeyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Api-Key")
			if key == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingAPIKey, "Chave de API obrigatória", nil)
				return
			}

			apiKey, err := apiKeyRepo.GetActiveByKey(key)
			if err != nil {
				logrus.WithError(err).Error("Erro ao validar chave de API")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao validar chave de API", nil)
				return
			}

			if apiKey == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidAPIKey, "Chave de API inválida", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
