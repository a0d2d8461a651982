package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors. key identifies the row
// in the message (an id or a headword).
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case "23502", "23514": // not_null_violation, check_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}
