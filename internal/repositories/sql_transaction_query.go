package repositories

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

var transactionColumns = []string{
	"id",
	"account_id",
	"operation_type_id",
	"amount",
	"signed_amount",
	"outstanding_balance",
	"event_timestamp",
	"status",
	"created_at",
	"updated_at",
}

var queryTransactionCreate = `
		INSERT INTO transactions (
			account_id, operation_type_id, amount, signed_amount, outstanding_balance,
			event_timestamp, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id;`

// buildUnsettledQuery selects the debits of accountID that still carry a
// negative outstanding balance, oldest first.
func buildUnsettledQuery(accountID int64, until time.Time, excludeID int64) (string, []any, error) {
	q := psql.Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"account_id": accountID}).
		Where(sq.Lt{"outstanding_balance": 0}).
		Where(sq.LtOrEq{"event_timestamp": until})

	if excludeID > 0 {
		q = q.Where(sq.NotEq{"id": excludeID})
	}

	return q.OrderBy("event_timestamp ASC", "id ASC").ToSql()
}

// buildBulkUpdateOutstandingQuery writes every outstanding balance of trxs in
// one statement, joining against a VALUES list.
func buildBulkUpdateOutstandingQuery(trxs []*models.Transaction, now time.Time) (string, []any) {
	var (
		sb   strings.Builder
		args = make([]any, 0, len(trxs)*2+1)
	)

	args = append(args, now)
	sb.WriteString("UPDATE transactions AS t SET outstanding_balance = v.outstanding_balance, updated_at = $1 FROM (VALUES ")
	for i, trx := range trxs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d::bigint, $%d::numeric)", len(args)+1, len(args)+2)
		args = append(args, trx.ID, trx.OutstandingBalance)
	}
	sb.WriteString(") AS v(id, outstanding_balance) WHERE t.id = v.id;")

	return sb.String(), args
}
