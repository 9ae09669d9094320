package handler

import (
	"net/http"

	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/api/handler/router"
	"github.com/vfg2006/ad-manager-api/internal/scheduler"
	"github.com/vfg2006/ad-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-manager-api/internal/usecases/managing"
	"github.com/vfg2006/ad-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-manager-api/internal/usecases/serving"
	"github.com/vfg2006/ad-manager-api/internal/usecases/tracking"
	"github.com/vfg2006/ad-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Serving agrupa as rotas públicas de veiculação e rastreamento.
// Todas exigem chave de API válida e passam pelo limitador por chave.
func Serving(
	servingService serving.AdServer,
	trackingService tracking.Recorder,
	apiKeyRepo repository.APIKeyRepository,
	limiter *middleware.RateLimiter,
) []router.Route {
	publicMiddlewares := []func(http.Handler) http.Handler{
		middleware.APIKeyAuth(apiKeyRepo),
		limiter.PerKey(),
	}

	return []router.Route{
		{
			Path:        "/api/ads",
			Method:      http.MethodGet,
			Handler:     GetAds(servingService),
			Middlewares: publicMiddlewares,
		},
		{
			Path:        "/api/ads/track/impression",
			Method:      http.MethodPost,
			Handler:     TrackImpression(trackingService),
			Middlewares: publicMiddlewares,
		},
		{
			Path:        "/api/ads/track/click",
			Method:      http.MethodPost,
			Handler:     TrackClick(trackingService),
			Middlewares: publicMiddlewares,
		},
	}
}

func Analytics(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/overall",
			Method:  http.MethodGet,
			Handler: GetSystemAnalytics(service),
		},
		{
			Path:    "/v1/analytics/ad/:id",
			Method:  http.MethodGet,
			Handler: GetAdAnalytics(service),
		},
		{
			Path:    "/v1/analytics/campaign/:id",
			Method:  http.MethodGet,
			Handler: GetCampaignAnalytics(service),
		},
	}
}

func Ads(service managing.Manager, uploader *ImageUploader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ads",
			Method:  http.MethodGet,
			Handler: ListAds(service),
		},
		{
			Path:    "/v1/ads",
			Method:  http.MethodPost,
			Handler: CreateAd(service, uploader),
		},
		{
			Path:    "/v1/ads/:id",
			Method:  http.MethodGet,
			Handler: GetAd(service),
		},
		{
			Path:    "/v1/ads/:id",
			Method:  http.MethodPut,
			Handler: UpdateAd(service),
		},
		{
			Path:    "/v1/ads/:id",
			Method:  http.MethodDelete,
			Handler: DeleteAd(service),
		},
		{
			Path:    "/v1/ads/:id/status",
			Method:  http.MethodPatch,
			Handler: UpdateAdStatus(service),
		},
		{
			Path:    "/v1/ads/:id/image",
			Method:  http.MethodPost,
			Handler: UploadAdImage(service, uploader),
		},
	}
}

func Campaigns(service managing.Manager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(service),
		},
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodPost,
			Handler: CreateCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodGet,
			Handler: GetCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodPut,
			Handler: UpdateCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodDelete,
			Handler: DeleteCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id/status",
			Method:  http.MethodPatch,
			Handler: UpdateCampaignStatus(service),
		},
		{
			Path:    "/v1/campaigns/:id/ads",
			Method:  http.MethodPost,
			Handler: AssignAds(service),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateAdmin(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
	}
}

func Cron(digest *scheduler.AnalyticsDigestService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/digest",
			Method:  http.MethodPost,
			Handler: RunAnalyticsDigest(digest),
		},
	}
}

func APIKeys(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/api-keys",
			Method:  http.MethodGet,
			Handler: ListAPIKeys(service),
		},
		{
			Path:    "/v1/api-keys",
			Method:  http.MethodPost,
			Handler: CreateAPIKey(service),
		},
		{
			Path:    "/v1/api-keys/:id",
			Method:  http.MethodDelete,
			Handler: RevokeAPIKey(service),
		},
	}
}
