package testdata

import (
	"database/sql"
)

// DatabaseConfig tests database/sql package types
type DatabaseConfig struct {
	//getset:get_copy, vis="pub"
	dsn sql.NullString

	//getset:get_mut
	//getset:set
	maxConns sql.NullInt64
}
