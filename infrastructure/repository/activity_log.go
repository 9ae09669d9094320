package repository

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

const (
	activityLogsTable = "activity_logs"
)

type ActivityLogRepository interface {
	Log(entry *domain.ActivityLog) error
}

type activityLogRepository struct {
	conn *postgres.Connection
}

func NewActivityLogRepository(conn *postgres.Connection) ActivityLogRepository {
	return &activityLogRepository{
		conn: conn,
	}
}

func (r *activityLogRepository) Log(entry *domain.ActivityLog) error {
	var metadataJSON []byte
	var err error

	if entry.Metadata != nil {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("erro ao serializar metadata para JSON: %w", err)
		}
	}

	query, args, err := squirrel.
		Insert(activityLogsTable).
		Columns("action", "entity", "entity_id", "admin_id", "metadata").
		Values(entry.Action, entry.Entity, entry.EntityID, entry.AdminID, metadataJSON).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao registrar atividade: %w", err)
	}

	return nil
}
