package repositories

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
)

// pgUniqueViolation is the SQLSTATE postgres raises for a unique index clash.
const pgUniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// classifyPQError maps driver errors onto the shared sentinels.
func classifyPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return common.WrapError{Causer: pqErr.Constraint, Err: common.ErrDataExist}
	}
	return err
}
