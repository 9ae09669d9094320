package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

const (
	adminsTable = "admins"
)

type AdminRepository interface {
	Create(admin *domain.Admin) (*domain.Admin, error)
	GetByEmail(email string) (*domain.Admin, error)
	GetByID(id int) (*domain.Admin, error)
}

type adminRepository struct {
	conn *postgres.Connection
}

func NewAdminRepository(conn *postgres.Connection) AdminRepository {
	return &adminRepository{
		conn: conn,
	}
}

func (r *adminRepository) Create(admin *domain.Admin) (*domain.Admin, error) {
	query, args, err := squirrel.
		Insert(adminsTable).
		Columns("name", "email", "password_hash").
		Values(admin.Name, strings.ToLower(admin.Email), admin.PasswordHash).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir administrador: %w", err)
	}

	return admin, nil
}

func (r *adminRepository) GetByEmail(email string) (*domain.Admin, error) {
	query, args, err := r.selectAdmins().
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanAdmin(r.conn.QueryRow(query, args...))
}

func (r *adminRepository) GetByID(id int) (*domain.Admin, error) {
	query, args, err := r.selectAdmins().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanAdmin(r.conn.QueryRow(query, args...))
}

func (r *adminRepository) selectAdmins() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "email", "password_hash", "created_at", "updated_at").
		From(adminsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *adminRepository) scanAdmin(row *sql.Row) (*domain.Admin, error) {
	admin := &domain.Admin{}
	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear administrador: %w", err)
	}

	return admin, nil
}
