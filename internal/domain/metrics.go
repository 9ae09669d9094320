package domain

// AdMetrics agrega os contadores diários recentes de um anúncio
// (janela configurável, 30 dias por padrão)
type AdMetrics struct {
	AdID             string          `json:"ad_id"`
	TotalImpressions int64           `json:"total_impressions"`
	TotalClicks      int64           `json:"total_clicks"`
	CTR              float64         `json:"ctr"`
	DailyAnalytics   []*DailyCounter `json:"daily_analytics"`
}

// AdBreakdown é a participação de um anúncio dentro das métricas da campanha
type AdBreakdown struct {
	AdID        string `json:"ad_id"`
	AdTitle     string `json:"ad_title"`
	Impressions int64  `json:"impressions"`
	Clicks      int64  `json:"clicks"`
}

// CampaignMetrics soma todo o histórico dos anúncios atualmente
// vinculados à campanha
type CampaignMetrics struct {
	CampaignID       string        `json:"campaign_id"`
	CampaignName     string        `json:"campaign_name"`
	TotalAds         int           `json:"total_ads"`
	TotalImpressions int64         `json:"total_impressions"`
	TotalClicks      int64         `json:"total_clicks"`
	CTR              float64       `json:"ctr"`
	AdsAnalytics     []AdBreakdown `json:"ads_analytics"`
}

// SystemMetrics soma todo o histórico de todos os anúncios,
// independente de status ou vínculo
type SystemMetrics struct {
	TotalAds         int     `json:"total_ads"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	CTR              float64 `json:"ctr"`
}
