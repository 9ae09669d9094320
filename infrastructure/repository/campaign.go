package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

const (
	campaignsTable = "campaigns"
)

type CampaignRepository interface {
	Create(campaign *domain.Campaign) (*domain.Campaign, error)
	GetByID(id string) (*domain.Campaign, error)
	List() ([]*domain.Campaign, error)
	Update(campaign *domain.Campaign) error
	UpdateStatus(id string, status domain.Status) error
	Delete(id string) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Create(campaign *domain.Campaign) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "name", "status", "start_date", "end_date", "admin_id").
		Values(campaign.ID, campaign.Name, campaign.Status, campaign.StartDate, campaign.EndDate, campaign.AdminID).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) GetByID(id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id", "c.name", "c.status", "c.start_date", "c.end_date", "c.admin_id",
			"(SELECT COUNT(*) FROM ads a WHERE a.campaign_id = c.id) AS ad_count",
			"c.created_at", "c.updated_at").
		From(campaignsTable + " c").
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign := &domain.Campaign{}
	err = r.conn.QueryRow(query, args...).Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Status,
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.AdminID,
		&campaign.AdCount,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) List() ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id", "c.name", "c.status", "c.start_date", "c.end_date", "c.admin_id",
			"(SELECT COUNT(*) FROM ads a WHERE a.campaign_id = c.id) AS ad_count",
			"c.created_at", "c.updated_at").
		From(campaignsTable + " c").
		OrderBy("c.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		err := rows.Scan(
			&campaign.ID,
			&campaign.Name,
			&campaign.Status,
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.AdminID,
			&campaign.AdCount,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) Update(campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Update(campaignsTable).
		Set("name", campaign.Name).
		Set("start_date", campaign.StartDate).
		Set("end_date", campaign.EndDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaign.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) UpdateStatus(id string, status domain.Status) error {
	query, args, err := squirrel.
		Update(campaignsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(campaignsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover campanha: %w", err)
	}

	return nil
}
