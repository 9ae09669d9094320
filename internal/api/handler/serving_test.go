package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/internal/usecases/tracking"
)

type stubAdServer struct {
	gotPlacement *domain.Placement
	gotLimit     int
	ads          []domain.AdSummary
	err          error
}

func (s *stubAdServer) GetAds(placement *domain.Placement, limit int) ([]domain.AdSummary, error) {
	s.gotPlacement = placement
	s.gotLimit = limit
	return s.ads, s.err
}

type stubRecorder struct {
	impressions []string
	clicks      []string
	err         error
}

func (s *stubRecorder) RecordImpression(adID string) error {
	s.impressions = append(s.impressions, adID)
	return s.err
}

func (s *stubRecorder) RecordClick(adID string) error {
	s.clicks = append(s.clicks, adID)
	return s.err
}

func TestGetAds(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedLimit  int
		callsService   bool
	}{
		{
			name:           "Sem parâmetros usa o limite padrão",
			query:          "",
			expectedStatus: http.StatusOK,
			expectedLimit:  1,
			callsService:   true,
		},
		{
			name:           "Limite válido é repassado",
			query:          "?limit=10",
			expectedStatus: http.StatusOK,
			expectedLimit:  10,
			callsService:   true,
		},
		{
			name:           "Limite acima do máximo é rejeitado",
			query:          "?limit=11",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Limite zero é rejeitado",
			query:          "?limit=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Limite não numérico é rejeitado",
			query:          "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Placement desconhecido é rejeitado",
			query:          "?placement=INVALIDO",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Placement válido é repassado",
			query:          "?placement=SIDEBAR&limit=2",
			expectedStatus: http.StatusOK,
			expectedLimit:  2,
			callsService:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubAdServer{ads: []domain.AdSummary{}}

			req := httptest.NewRequest(http.MethodGet, "/api/ads"+tt.query, nil)
			rec := httptest.NewRecorder()

			GetAds(service)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.callsService {
				assert.Equal(t, tt.expectedLimit, service.gotLimit)
			}
		})
	}
}

func TestTrackImpression(t *testing.T) {
	const validID = "5f3c0e84-44b5-4e4f-93f4-b09b5a62f0a1"

	tests := []struct {
		name           string
		body           string
		recorderErr    error
		expectedStatus int
		recorded       int
	}{
		{
			name:           "Evento válido é aceito com 202",
			body:           `{"ad_id": "` + validID + `"}`,
			expectedStatus: http.StatusAccepted,
			recorded:       1,
		},
		{
			name:           "Corpo malformado é rejeitado",
			body:           `{not-json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "ID ausente é rejeitado",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "ID que não é UUID é rejeitado sem tocar o serviço",
			body:           `{"ad_id": "abc-123"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Anúncio desconhecido resulta em 404",
			body:           `{"ad_id": "` + validID + `"}`,
			recorderErr:    tracking.ErrAdNotFound,
			expectedStatus: http.StatusNotFound,
			recorded:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &stubRecorder{err: tt.recorderErr}

			req := httptest.NewRequest(http.MethodPost, "/api/ads/track/impression", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			TrackImpression(recorder)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Len(t, recorder.impressions, tt.recorded)
			assert.Empty(t, recorder.clicks)
		})
	}
}

func TestTrackClick(t *testing.T) {
	const validID = "5f3c0e84-44b5-4e4f-93f4-b09b5a62f0a1"

	recorder := &stubRecorder{}

	req := httptest.NewRequest(http.MethodPost, "/api/ads/track/click", strings.NewReader(`{"ad_id": "`+validID+`"}`))
	rec := httptest.NewRecorder()

	TrackClick(recorder)(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{validID}, recorder.clicks)
	assert.Empty(t, recorder.impressions)
}
