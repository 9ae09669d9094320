package reporting

import "errors"

var (
	ErrCampaignNotFound = errors.New("campanha não encontrada")
)
