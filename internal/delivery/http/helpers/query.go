package helpers

import (
	"net/http"
	"strconv"

	"culturalevents/internal/domain"
)

// QueryDate parses the YYYY-MM-DD query parameter key. A missing parameter yields the zero Date.
func QueryDate(r *http.Request, key string) (domain.Date, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, domain.NewValidationError(key, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// QueryInt parses the integer query parameter key. ok is false when it is missing.
func QueryInt(r *http.Request, key string) (v int, ok bool, err error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, domain.NewValidationError(key, "must be an integer")
	}
	return v, true, nil
}
