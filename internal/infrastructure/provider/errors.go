package provider

import (
	"errors"

	"bcvrates/internal/domain"
	"bcvrates/internal/infrastructure/httpx"
)

func fetchError(source string, err error) *domain.FetchError {
	var se *httpx.StatusError
	switch {
	case errors.As(err, &se):
		return domain.NewFetchError(source, domain.FetchErrorStatus, err)
	case errors.Is(err, httpx.ErrDecode):
		return domain.NewFetchError(source, domain.FetchErrorParse, err)
	default:
		return domain.NewFetchError(source, domain.FetchErrorNetwork, err)
	}
}
