// Package apperr holds the error taxonomy shared by every service.
//
// Services wrap one of these sentinels with context, e.g.
//
//	fmt.Errorf("%w: customer %s", apperr.ErrNotFound, id)
//
// and the transport layer maps them to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)
