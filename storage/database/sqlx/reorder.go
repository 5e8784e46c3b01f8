package sqlxrepos

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type sortPair struct {
	ID        int
	SortOrder int
}

// reorder applies a batch of sort-order updates inside a single transaction.
// The batch is all-or-nothing: any failure, including a pair whose id matches
// no row, rolls the whole thing back.
func reorder(ctx context.Context, db *sqlx.DB, table string, notFoundErr error, pairs []sortPair) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "reordering %s: begin", table)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`UPDATE %s SET sort_order = $1, updated_at = $2 WHERE id = $3`, table)
	now := time.Now().UTC()
	for _, p := range pairs {
		res, err := tx.ExecContext(ctx, query, p.SortOrder, now, p.ID)
		if err != nil {
			return errors.Wrapf(err, "reordering %s", table)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return errors.Wrapf(err, "reordering %s", table)
		}
		if n == 0 {
			return notFoundErr
		}
	}
	return errors.Wrapf(tx.Commit(), "reordering %s: commit", table)
}
