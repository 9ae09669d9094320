package managing

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidDateWindow   = errors.New("a data de início não pode ser posterior à data de fim")

	// Erros de recursos
	ErrAdNotFound       = errors.New("anúncio não encontrado")
	ErrCampaignNotFound = errors.New("campanha não encontrada")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ManagingError é um erro com contexto adicional para o gerenciamento
// de anúncios e campanhas
type ManagingError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	EntityID string // ID da entidade envolvida (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ManagingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ManagingError) Unwrap() error {
	return e.Err
}

// NewManagingError cria um novo ManagingError
func NewManagingError(err error, code string, details string) *ManagingError {
	return &ManagingError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
