package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number raised when an insert
// violates a UNIQUE index (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL unique-constraint
// violation.  The reservation code generator and operator registration
// both key off this classification.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
