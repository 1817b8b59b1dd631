//go:build cgo

package heredity

// If cgo is enabled, we will use the mattn cgo sqlite3 driver. It is faster
// than the modernc sqlite driver.

import (
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const whichSQLiteDriver = "sqlite3"

// sqliteDSN enables foreign keys, which the mattn driver takes as a query
// parameter.
func sqliteDSN(uri string) string {
	if strings.Contains(uri, "?") {
		return uri + "&_foreign_keys=on"
	}
	return uri + "?_foreign_keys=on"
}
