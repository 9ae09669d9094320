package domain

import "time"

// APIKey autoriza o acesso às rotas públicas de veiculação e tracking
type APIKey struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityLog registra mutações administrativas para auditoria
type ActivityLog struct {
	ID       int64          `json:"id"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entity_id"`
	AdminID  int            `json:"admin_id"`
	Metadata map[string]any `json:"metadata"`
}
