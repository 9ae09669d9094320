package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin é o usuário administrador do painel
type Admin struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	AdminID    int
	AdminName  string
	AdminEmail string
	jwt.RegisteredClaims
}
