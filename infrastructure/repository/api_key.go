package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

const (
	apiKeysTable = "api_keys"
)

type APIKeyRepository interface {
	Create(key *domain.APIKey) (*domain.APIKey, error)
	GetActiveByKey(key string) (*domain.APIKey, error)
	List() ([]*domain.APIKey, error)
	Revoke(id int) error
}

type apiKeyRepository struct {
	conn *postgres.Connection
}

func NewAPIKeyRepository(conn *postgres.Connection) APIKeyRepository {
	return &apiKeyRepository{
		conn: conn,
	}
}

func (r *apiKeyRepository) Create(key *domain.APIKey) (*domain.APIKey, error) {
	query, args, err := squirrel.
		Insert(apiKeysTable).
		Columns("name", "key", "active").
		Values(key.Name, key.Key, key.Active).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&key.ID, &key.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir chave de API: %w", err)
	}

	return key, nil
}

func (r *apiKeyRepository) GetActiveByKey(key string) (*domain.APIKey, error) {
	query, args, err := squirrel.
		Select("id", "name", "key", "active", "created_at").
		From(apiKeysTable).
		Where(squirrel.Eq{"key": key, "active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	apiKey := &domain.APIKey{}
	err = r.conn.QueryRow(query, args...).Scan(&apiKey.ID, &apiKey.Name, &apiKey.Key, &apiKey.Active, &apiKey.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar chave de API: %w", err)
	}

	return apiKey, nil
}

func (r *apiKeyRepository) List() ([]*domain.APIKey, error) {
	query, args, err := squirrel.
		Select("id", "name", "key", "active", "created_at").
		From(apiKeysTable).
		OrderBy("created_at DESC").
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

	keys := make([]*domain.APIKey, 0)
	for rows.Next() {
		key := &domain.APIKey{}
		if err := rows.Scan(&key.ID, &key.Name, &key.Key, &key.Active, &key.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear chave de API: %w", err)
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return keys, nil
}

func (r *apiKeyRepository) Revoke(id int) error {
	query, args, err := squirrel.
		Update(apiKeysTable).
		Set("active", false).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao revogar chave de API: %w", err)
	}

	return nil
}
