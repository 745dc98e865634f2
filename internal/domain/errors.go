package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNoRate   = errors.New("no rate")
)

type FetchErrorKind string

const (
	FetchErrorNetwork FetchErrorKind = "network"
	FetchErrorStatus  FetchErrorKind = "status"
	FetchErrorParse   FetchErrorKind = "parse"
	FetchErrorNoMatch FetchErrorKind = "no_match"
)

// FetchError describes why a source produced no rate.
type FetchError struct {
	Source string
	Kind   FetchErrorKind
	Err    error
}

func NewFetchError(source string, kind FetchErrorKind, err error) *FetchError {
	return &FetchError{Source: source, Kind: kind, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf returns the kind of the first FetchError in err's chain.
func KindOf(err error) (FetchErrorKind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

func IsKind(err error, kind FetchErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
