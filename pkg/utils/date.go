package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// DayBucket trunca o instante para a meia-noite do fuso de referência.
// O fuso é fixado na configuração da aplicação, nunca por requisição,
// para que os buckets diários sejam reproduzíveis entre ambientes.
func DayBucket(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
