package domain

import "time"

// EventKind diferencia os dois eventos de engajamento rastreados
type EventKind string

const (
	EventImpression EventKind = "impression"
	EventClick      EventKind = "click"
)

// DailyCounter acumula impressões e cliques de um anúncio em um dia
// de calendário. Existe no máximo um contador por par (ad_id, date);
// o repositório garante isso com incremento via upsert atômico.
type DailyCounter struct {
	AdID        string    `json:"ad_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
}

// CounterTotals é o somatório de contadores dentro de um escopo
// (um anúncio, uma campanha ou o sistema inteiro)
type CounterTotals struct {
	Impressions int64
	Clicks      int64
}
