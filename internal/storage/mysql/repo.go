package mysql

import (
	"database/sql"
	"errors"
	"time"

	drv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// MySQL server error numbers we translate.
const (
	errDupEntry        = 1062
	errNoReferencedRow = 1452
	errCheckConstraint = 3819
	errOutOfRange      = 1264
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}
func nullF64(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}

func mysqlErrNo(err error) uint16 {
	var me *drv.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicate(err error) bool { return mysqlErrNo(err) == errDupEntry }

func isBadReference(err error) bool {
	n := mysqlErrNo(err)
	return n == errNoReferencedRow || n == errCheckConstraint
}

func isOutOfRange(err error) bool { return mysqlErrNo(err) == errOutOfRange }

func dateStr(t time.Time) string { return t.UTC().Format("2006-01-02") }

type Repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) *Repo { return &Repo{db: db} }
