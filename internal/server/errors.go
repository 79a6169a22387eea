package server

import (
	"errors"
	"net/http"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/session"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		parseErr *problemgen.ParseError
		cfgErr   *problemgen.ConfigurationError
		poolErr  *problemgen.InsufficientPoolError
	)
	switch {
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &cfgErr), errors.As(err, &poolErr):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotAccepting),
		errors.Is(err, session.ErrTickTooEarly),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, session.ErrUnknownOption):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
