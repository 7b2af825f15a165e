// Copyright (c) 2026 Inkshelf. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful
// [apperr.AppError]. It hides internal database details from the client
// while classifying the error type.
//
// The action string is kept for call-site readability; it travels with the
// cause chain via the wrapped error.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
