package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ad-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

const (
	dailyCountersTable = "ad_daily_counters"
)

type DailyCounterRepository interface {
	// IncrementDaily incrementa em 1 o contador do dia para o anúncio,
	// criando o bucket caso não exista. A operação é um upsert atômico:
	// dois incrementos concorrentes para o mesmo (ad_id, date) nunca se
	// perdem.
	IncrementDaily(adID string, day time.Time, kind domain.EventKind) error
	GetRecentByAdID(adID string, limit int) ([]*domain.DailyCounter, error)
	SumByAdIDs(adIDs []string) (map[string]domain.CounterTotals, error)
	SumAll() (domain.CounterTotals, error)
}

type dailyCounterRepository struct {
	conn *postgres.Connection
}

func NewDailyCounterRepository(conn *postgres.Connection) DailyCounterRepository {
	return &dailyCounterRepository{
		conn: conn,
	}
}

func (r *dailyCounterRepository) IncrementDaily(adID string, day time.Time, kind domain.EventKind) error {
	impressions, clicks := 0, 0
	switch kind {
	case domain.EventImpression:
		impressions = 1
	case domain.EventClick:
		clicks = 1
	default:
		return fmt.Errorf("tipo de evento desconhecido: %s", kind)
	}

	query := squirrel.StatementBuilder.
		Insert(dailyCountersTable).
		Columns("ad_id", "date", "impressions", "clicks").
		Values(adID, day.Format("2006-01-02"), impressions, clicks).
		Suffix(`
			ON CONFLICT (ad_id, date) DO UPDATE SET
				impressions = ad_daily_counters.impressions + EXCLUDED.impressions,
				clicks = ad_daily_counters.clicks + EXCLUDED.clicks,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *dailyCounterRepository) GetRecentByAdID(adID string, limit int) ([]*domain.DailyCounter, error) {
	query, args, err := squirrel.
		Select("ad_id", "date", "impressions", "clicks").
		From(dailyCountersTable).
		Where(squirrel.Eq{"ad_id": adID}).
		OrderBy("date DESC").
		Limit(uint64(limit)).
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

	counters := make([]*domain.DailyCounter, 0)
	for rows.Next() {
		counter := &domain.DailyCounter{}
		if err := rows.Scan(&counter.AdID, &counter.Date, &counter.Impressions, &counter.Clicks); err != nil {
			return nil, fmt.Errorf("erro ao escanear contador diário: %w", err)
		}
		counters = append(counters, counter)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return counters, nil
}

// SumByAdIDs soma todo o histórico de contadores dos anúncios informados,
// agrupado por anúncio. Anúncios sem contador não aparecem no mapa.
func (r *dailyCounterRepository) SumByAdIDs(adIDs []string) (map[string]domain.CounterTotals, error) {
	totals := make(map[string]domain.CounterTotals)
	if len(adIDs) == 0 {
		return totals, nil
	}

	query, args, err := squirrel.
		Select("ad_id", "COALESCE(SUM(impressions), 0)", "COALESCE(SUM(clicks), 0)").
		From(dailyCountersTable).
		Where(squirrel.Eq{"ad_id": adIDs}).
		GroupBy("ad_id").
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

	for rows.Next() {
		var adID string
		var t domain.CounterTotals
		if err := rows.Scan(&adID, &t.Impressions, &t.Clicks); err != nil {
			return nil, fmt.Errorf("erro ao escanear totais: %w", err)
		}
		totals[adID] = t
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return totals, nil
}

func (r *dailyCounterRepository) SumAll() (domain.CounterTotals, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(impressions), 0)", "COALESCE(SUM(clicks), 0)").
		From(dailyCountersTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.CounterTotals{}, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var totals domain.CounterTotals
	err = r.conn.QueryRow(query, args...).Scan(&totals.Impressions, &totals.Clicks)
	if err != nil {
		return domain.CounterTotals{}, fmt.Errorf("erro ao somar contadores: %w", err)
	}

	return totals, nil
}
