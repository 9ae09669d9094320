package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-manager-api/internal/config"
	"github.com/vfg2006/ad-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			Secret:        "segredo-de-teste",
			TokenDuration: time.Hour,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	admin := &domain.Admin{
		ID:           1,
		Name:         "Administrador",
		Email:        "admin@example.com",
		PasswordHash: hashPassword(t, "senha-correta"),
	}

	t.Run("Login válido emite token que valida de volta às mesmas claims", func(t *testing.T) {
		mockAdminRepo := mocks.NewMockAdminRepository(ctrl)
		mockAdminRepo.EXPECT().GetByEmail("admin@example.com").Return(admin, nil)

		service := &Service{adminRepo: mockAdminRepo, cfg: testConfig()}

		token, err := service.Login("admin@example.com", "senha-correta")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, admin.ID, claims.AdminID)
		assert.Equal(t, admin.Email, claims.AdminEmail)
	})

	t.Run("Senha incorreta falha com credenciais inválidas", func(t *testing.T) {
		mockAdminRepo := mocks.NewMockAdminRepository(ctrl)
		mockAdminRepo.EXPECT().GetByEmail("admin@example.com").Return(admin, nil)

		service := &Service{adminRepo: mockAdminRepo, cfg: testConfig()}

		token, err := service.Login("admin@example.com", "senha-errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("Administrador inexistente falha com credenciais inválidas", func(t *testing.T) {
		mockAdminRepo := mocks.NewMockAdminRepository(ctrl)
		mockAdminRepo.EXPECT().GetByEmail("ninguem@example.com").Return(nil, nil)

		service := &Service{adminRepo: mockAdminRepo, cfg: testConfig()}

		_, err := service.Login("ninguem@example.com", "qualquer")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service := &Service{cfg: testConfig()}

	t.Run("Token malformado é rejeitado", func(t *testing.T) {
		claims, err := service.ValidateToken("nao.e.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Token assinado com outro segredo é rejeitado", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.Auth.Secret = "outro-segredo"
		other := &Service{cfg: otherCfg}

		token, err := other.generateToken(&domain.Admin{ID: 2, Email: "x@example.com"})
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Token expirado é rejeitado", func(t *testing.T) {
		expiredCfg := testConfig()
		expiredCfg.Auth.TokenDuration = -time.Hour
		expired := &Service{cfg: expiredCfg}

		token, err := expired.generateToken(&domain.Admin{ID: 3, Email: "y@example.com"})
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestService_CreateAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Nome vazio é rejeitado", func(t *testing.T) {
		service := &Service{cfg: testConfig()}

		key, err := service.CreateAPIKey("")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
		assert.Nil(t, key)
	})

	t.Run("Chave gerada é opaca e nasce ativa", func(t *testing.T) {
		mockAPIKeyRepo := mocks.NewMockAPIKeyRepository(ctrl)
		mockAPIKeyRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(key *domain.APIKey) (*domain.APIKey, error) {
				assert.Equal(t, "integração-site", key.Name)
				assert.Len(t, key.Key, 32)
				assert.True(t, key.Active)
				key.ID = 1
				return key, nil
			})

		service := &Service{apiKeyRepo: mockAPIKeyRepo, cfg: testConfig()}

		key, err := service.CreateAPIKey("integração-site")
		assert.NoError(t, err)
		assert.Equal(t, 1, key.ID)
	})
}
