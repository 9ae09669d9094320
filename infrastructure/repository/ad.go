package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

const (
	adsTable = "ads"
)

type AdRepository interface {
	Create(ad *domain.Ad) (*domain.Ad, error)
	GetByID(id string) (*domain.Ad, error)
	List(adminID *int) ([]*domain.Ad, error)
	ListByCampaign(campaignID string) ([]*domain.Ad, error)
	Update(ad *domain.Ad) error
	UpdateStatus(id string, status domain.Status) error
	Delete(id string) error
	AssignCampaign(adIDs []string, campaignID string) error
	FindEligible(now time.Time, placement *domain.Placement) ([]domain.AdSummary, error)
	CountAll() (int, error)
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func (r *adRepository) Create(ad *domain.Ad) (*domain.Ad, error) {
	query, args, err := squirrel.
		Insert(adsTable).
		Columns("id", "title", "cta_link", "image_url", "placement", "status", "start_date", "end_date", "campaign_id", "admin_id").
		Values(ad.ID, ad.Title, ad.CtaLink, ad.ImageURL, ad.Placement, ad.Status, ad.StartDate, ad.EndDate, ad.CampaignID, ad.AdminID).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&ad.CreatedAt, &ad.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir anúncio: %w", err)
	}

	return ad, nil
}

func (r *adRepository) GetByID(id string) (*domain.Ad, error) {
	query, args, err := r.selectAds().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ad, err := r.scanAd(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar anúncio: %w", err)
	}

	return ad, nil
}

func (r *adRepository) List(adminID *int) ([]*domain.Ad, error) {
	queryBuilder := r.selectAds().OrderBy("created_at DESC")
	if adminID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"admin_id": *adminID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryAds(query, args...)
}

func (r *adRepository) ListByCampaign(campaignID string) ([]*domain.Ad, error) {
	query, args, err := r.selectAds().
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryAds(query, args...)
}

func (r *adRepository) Update(ad *domain.Ad) error {
	query, args, err := squirrel.
		Update(adsTable).
		Set("title", ad.Title).
		Set("cta_link", ad.CtaLink).
		Set("image_url", ad.ImageURL).
		Set("placement", ad.Placement).
		Set("start_date", ad.StartDate).
		Set("end_date", ad.EndDate).
		Set("campaign_id", ad.CampaignID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ad.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar anúncio: %w", err)
	}

	return nil
}

func (r *adRepository) UpdateStatus(id string, status domain.Status) error {
	query, args, err := squirrel.
		Update(adsTable).
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
		return fmt.Errorf("erro ao atualizar status do anúncio: %w", err)
	}

	return nil
}

func (r *adRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete(adsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover anúncio: %w", err)
	}

	return nil
}

func (r *adRepository) AssignCampaign(adIDs []string, campaignID string) error {
	query, args, err := squirrel.
		Update(adsTable).
		Set("campaign_id", campaignID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": adIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao vincular anúncios à campanha: %w", err)
	}

	return nil
}

// FindEligible retorna os anúncios veiculáveis no instante informado:
// status ACTIVE e janela start_date <= now <= end_date, com filtro
// opcional de placement. Resultado sem ordenação garantida; a seleção
// aleatória acontece na camada de uso.
func (r *adRepository) FindEligible(now time.Time, placement *domain.Placement) ([]domain.AdSummary, error) {
	queryBuilder := squirrel.
		Select("id", "title", "image_url", "cta_link", "placement").
		From(adsTable).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.LtOrEq{"start_date": now}).
		Where(squirrel.GtOrEq{"end_date": now}).
		PlaceholderFormat(squirrel.Dollar)

	if placement != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"placement": *placement})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar anúncios elegíveis: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.AdSummary, 0)
	for rows.Next() {
		var summary domain.AdSummary
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.ImageURL, &summary.CtaLink, &summary.Placement); err != nil {
			return nil, fmt.Errorf("erro ao escanear anúncio elegível: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summaries, nil
}

func (r *adRepository) CountAll() (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(adsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar anúncios: %w", err)
	}

	return count, nil
}

func (r *adRepository) selectAds() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "title", "cta_link", "image_url", "placement", "status", "start_date", "end_date", "campaign_id", "admin_id", "created_at", "updated_at").
		From(adsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *adRepository) queryAds(query string, args ...interface{}) ([]*domain.Ad, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ads := make([]*domain.Ad, 0)
	for rows.Next() {
		ad := &domain.Ad{}
		err := rows.Scan(
			&ad.ID,
			&ad.Title,
			&ad.CtaLink,
			&ad.ImageURL,
			&ad.Placement,
			&ad.Status,
			&ad.StartDate,
			&ad.EndDate,
			&ad.CampaignID,
			&ad.AdminID,
			&ad.CreatedAt,
			&ad.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
		}
		ads = append(ads, ad)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ads, nil
}

func (r *adRepository) scanAd(row *sql.Row) (*domain.Ad, error) {
	ad := &domain.Ad{}
	err := row.Scan(
		&ad.ID,
		&ad.Title,
		&ad.CtaLink,
		&ad.ImageURL,
		&ad.Placement,
		&ad.Status,
		&ad.StartDate,
		&ad.EndDate,
		&ad.CampaignID,
		&ad.AdminID,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return ad, nil
}
