package mysql

import (
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"
)

// ER_DUP_ENTRY
const errDupEntry = 1062

// isDuplicateKey reports whether err is a unique-key violation.
func isDuplicateKey(err error) bool {
	var me *mysqldrv.MySQLError
	return errors.As(err, &me) && me.Number == errDupEntry
}
