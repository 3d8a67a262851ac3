// Package repository implements relational storage access for the blog
// entities. Every mutation runs its write and the confirmatory read inside
// one transaction, and every storage failure is classified into a tagged
// application error before it leaves this package.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
)

// MySQL error numbers the classifier cares about.
const (
	mysqlErrRowReferenced = 1451 // parent row still referenced by a child
	mysqlErrNoReferenced  = 1452 // child row references a missing parent
)

// classify maps driver errors to the application error taxonomy. It is the
// backstop behind the validation engine's pre-transaction checks: a unique
// or foreign-key violation that slips past them lands here instead of
// escaping as a raw driver error.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Wrap(apperr.NotFound, "Data row not found!", err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrRowReferenced, mysqlErrNoReferenced:
			return apperr.Wrap(apperr.ConflictReferenced, "Data that has been used cannot be deleted!", err)
		default:
			return apperr.Wrap(apperr.Driver, "Failed to process!", err)
		}
	}
	return apperr.Wrap(apperr.Generic, "Error!", err)
}
