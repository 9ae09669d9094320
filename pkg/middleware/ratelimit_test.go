package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-manager-api/internal/config"
)

func doRequest(handler http.Handler, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/ads", nil)
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_PerKey(t *testing.T) {
	t.Run("Requisições acima do burst são rejeitadas com 429", func(t *testing.T) {
		limiter := NewRateLimiter(config.Serving{
			RateLimitEnabled: true,
			RateLimitRPS:     1,
			RateLimitBurst:   3,
		})

		handler := limiter.PerKey()(okHandler())

		for i := 0; i < 3; i++ {
			rec := doRequest(handler, "chave-a")
			assert.Equal(t, http.StatusOK, rec.Code, "requisição %d dentro do burst", i+1)
		}

		rec := doRequest(handler, "chave-a")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("Chaves distintas têm cotas independentes", func(t *testing.T) {
		limiter := NewRateLimiter(config.Serving{
			RateLimitEnabled: true,
			RateLimitRPS:     1,
			RateLimitBurst:   1,
		})

		handler := limiter.PerKey()(okHandler())

		assert.Equal(t, http.StatusOK, doRequest(handler, "chave-a").Code)
		assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "chave-a").Code)

		// A chave B não compartilha o bucket esgotado da chave A
		assert.Equal(t, http.StatusOK, doRequest(handler, "chave-b").Code)
	})

	t.Run("Limitador desabilitado deixa tudo passar", func(t *testing.T) {
		limiter := NewRateLimiter(config.Serving{
			RateLimitEnabled: false,
			RateLimitRPS:     1,
			RateLimitBurst:   1,
		})

		handler := limiter.PerKey()(okHandler())

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, doRequest(handler, "chave-a").Code)
		}
	})
}
