package middleware

import (
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/internal/config"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
	"golang.org/x/time/rate"
)

// RateLimiter aplica uma cota fixa por chave de API nas rotas públicas,
// usando token bucket. A cota é local ao processo; não há coordenação
// distribuída.
type RateLimiter struct {
	cfg config.Serving

	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
}

func NewRateLimiter(cfg config.Serving) *RateLimiter {
	return &RateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

// PerKey limita as requisições por chave de API (header X-Api-Key).
// Requisições sem chave caem no bucket da chave vazia e são rejeitadas
// logo depois pelo APIKeyAuth.
func (rl *RateLimiter) PerKey() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.cfg.RateLimitEnabled {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-Api-Key")
			limiter := rl.getLimiter(key)

			if !limiter.Allow() {
				logrus.WithFields(logrus.Fields{
					"path": r.URL.Path,
				}).Warn("Limite de requisições excedido para a chave de API")

				w.Header().Set("Retry-After", "1")
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Limite de requisições excedido", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getLimiter retorna (ou cria) o limiter da chave informada
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists = rl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(rl.cfg.RateLimitRPS), rl.cfg.RateLimitBurst)
	rl.limiters[key] = limiter

	return limiter
}
