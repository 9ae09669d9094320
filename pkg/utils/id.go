package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const apiKeyLength = 32

// GenerateID gera um identificador curto para nomes de arquivos de upload
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateAPIKey gera a chave opaca entregue a clientes da API pública
func GenerateAPIKey() (string, error) {
	return gonanoid.Generate(characters, apiKeyLength)
}

// IsValidUUID valida identificadores de anúncios e campanhas na borda da API
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
