package tracking

import "errors"

var (
	// ErrAdNotFound indica que o identificador rastreado não corresponde
	// a nenhum anúncio conhecido
	ErrAdNotFound = errors.New("anúncio não encontrado")
)
