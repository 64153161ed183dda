package utils

import "time"

// ParseDate converte uma data no formato YYYY-MM-DD. String vazia retorna
// data zero, sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// DaysBetween retorna todas as datas entre start e end, inclusive
func DaysBetween(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}

	days := make([]time.Time, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return days
}
