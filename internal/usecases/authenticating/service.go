package authenticating

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/config"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"github.com/vfg2006/ad-manager-api/internal/usecases/mailing"
	"github.com/vfg2006/ad-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Login(email, password string) (string, error)
	CreateAdmin(name, email, password string) (*domain.Admin, error)
	GetAdminProfile(adminID int) (*domain.Admin, error)
	ValidateToken(tokenString string) (*domain.Claims, error)

	CreateAPIKey(name string) (*domain.APIKey, error)
	ListAPIKeys() ([]*domain.APIKey, error)
	RevokeAPIKey(id int) error
}

type Service struct {
	adminRepo  repository.AdminRepository
	apiKeyRepo repository.APIKeyRepository
	mailer     mailing.Mailer
	cfg        *config.Config
}

func NewService(
	adminRepo repository.AdminRepository,
	apiKeyRepo repository.APIKeyRepository,
	mailer mailing.Mailer,
	cfg *config.Config,
) Authenticator {
	return &Service{
		adminRepo:  adminRepo,
		apiKeyRepo: apiKeyRepo,
		mailer:     mailer,
		cfg:        cfg,
	}
}

func (s *Service) Login(email, password string) (string, error) {
	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar administrador")
	}

	if admin == nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	return s.generateToken(admin)
}

func (s *Service) CreateAdmin(name, email, password string) (*domain.Admin, error) {
	if name == "" || email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, e-mail e senha são obrigatórios")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar administrador")
	}

	if existing != nil {
		return nil, NewAuthError(ErrAdminAlreadyExists, apiErrors.ErrAdminAlreadyExists, "E-mail já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.Create(&domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar administrador")
	}

	// O e-mail de boas-vindas é melhor esforço; a conta já foi criada
	if err := s.mailer.SendAccountCreated(admin.Name, admin.Email); err != nil {
		logrus.WithError(err).WithField("email", admin.Email).Warn("Erro ao enviar e-mail de boas-vindas")
	}

	return admin, nil
}

func (s *Service) GetAdminProfile(adminID int) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}

	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return admin, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

func (s *Service) CreateAPIKey(name string) (*domain.APIKey, error) {
	if name == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome da chave é obrigatório")
	}

	key, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	return s.apiKeyRepo.Create(&domain.APIKey{
		Name:   name,
		Key:    key,
		Active: true,
	})
}

func (s *Service) ListAPIKeys() ([]*domain.APIKey, error) {
	return s.apiKeyRepo.List()
}

func (s *Service) RevokeAPIKey(id int) error {
	return s.apiKeyRepo.Revoke(id)
}

func (s *Service) generateToken(admin *domain.Admin) (string, error) {
	now := time.Now()

	claims := &domain.Claims{
		AdminID:    admin.ID,
		AdminName:  admin.Name,
		AdminEmail: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.cfg.Auth.Secret))
}
