package domain

import (
	"fmt"
	"time"
)

// Placement identifica o espaço onde o anúncio pode ser exibido
type Placement string

const (
	PlacementHomepageBanner Placement = "HOMEPAGE_BANNER"
	PlacementSidebar        Placement = "SIDEBAR"
	PlacementFooter         Placement = "FOOTER"
	PlacementPopup          Placement = "POPUP"
	PlacementInline         Placement = "INLINE"
)

// Status representa o ciclo de vida de anúncios e campanhas
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusPaused   Status = "PAUSED"
	StatusArchived Status = "ARCHIVED"
)

// ParsePlacement valida e converte o valor recebido na borda da API
func ParsePlacement(value string) (Placement, error) {
	switch Placement(value) {
	case PlacementHomepageBanner, PlacementSidebar, PlacementFooter, PlacementPopup, PlacementInline:
		return Placement(value), nil
	}
	return "", fmt.Errorf("placement inválido: %s", value)
}

// ParseStatus valida e converte o status recebido na borda da API
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusActive, StatusPaused, StatusArchived:
		return Status(value), nil
	}
	return "", fmt.Errorf("status inválido: %s", value)
}

type Ad struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CtaLink    string    `json:"cta_link"`
	ImageURL   string    `json:"image_url"`
	Placement  Placement `json:"placement"`
	Status     Status    `json:"status"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CampaignID *string   `json:"campaign_id"`
	AdminID    int       `json:"admin_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AdSummary é o payload mínimo entregue na rota pública de veiculação.
// Não expõe status, datas nem vínculo de campanha.
type AdSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	CtaLink   string    `json:"cta_link"`
	Placement Placement `json:"placement"`
}

type UpdateAdRequest struct {
	ID         string     `json:"id"`
	Title      *string    `json:"title"`
	CtaLink    *string    `json:"cta_link"`
	ImageURL   *string    `json:"image_url"`
	Placement  *Placement `json:"placement"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CampaignID *string    `json:"campaign_id"`
}
