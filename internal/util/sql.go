package util

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type TransactionCallback func(*sqlx.Tx) error

func Transaction(ctx context.Context, db *sqlx.DB, cb TransactionCallback) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "unable to begin transaction")
	}

	if err := cb(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return errors.Wrapf(err, "rollback error: %s\noriginal error", err2)
		}

		return err
	}

	return errors.Wrap(tx.Commit(), "unable to commit transaction")
}
