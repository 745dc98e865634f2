package application

import (
	"errors"

	"bcvrates/internal/domain"
)

var ErrNotFound = domain.ErrNotFound
var ErrRunInProgress = errors.New("another update run is in progress")
