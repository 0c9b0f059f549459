package daylog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Outcome tells a CreateOrGet caller whether it inserted the row.
type Outcome int

const (
	Created Outcome = iota
	Existing
)

func (o Outcome) String() string {
	if o == Existing {
		return "existing"
	}
	return "created"
}

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a duplicate key error, either
// translated by gorm or raw from the postgres driver.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// CreateOrGet inserts with create. When the insert loses a uniqueness race it
// re-reads the existing row by its natural key exactly once.
func CreateOrGet[T any](
	ctx context.Context,
	create func(context.Context) (T, error),
	reread func(context.Context) (T, error),
) (T, Outcome, error) {
	v, err := create(ctx)
	if err == nil {
		return v, Created, nil
	}
	var zero T
	if !IsUniqueViolation(err) {
		return zero, Created, err
	}
	v, err = reread(ctx)
	if err != nil {
		return zero, Existing, fmt.Errorf("re-read after duplicate key: %w", err)
	}
	return v, Existing, nil
}
