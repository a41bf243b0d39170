package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("invalid request parameters")
	ErrUnknownBusinessUnit = errors.New("unknown business unit")
	ErrYearInvalid         = errors.New("reporting year out of range")
	ErrSeedCountInvalid    = errors.New("seed user count out of range")
	UnExpectedError        = errors.New("unexpected server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUnknownBusinessUnit: BadRequest,
	ErrYearInvalid:         BadRequest,
	ErrSeedCountInvalid:    BadRequest,
	UnExpectedError:        InternalServerError,
}
