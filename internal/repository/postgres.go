package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// violation. Duplicate-edge and duplicate-block detection relies on it: the
// service-level pre-checks have a race window, the constraint does not.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Repositories bundles the PostgreSQL-backed stores sharing one pool.
type Repositories struct {
	Users       *UserRepository
	Connections *ConnectionRepository
	Blocks      *BlockRepository
}

// New creates all repositories over a shared connection pool.
func New(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Connections: NewConnectionRepository(db),
		Blocks:      NewBlockRepository(db),
	}
}
