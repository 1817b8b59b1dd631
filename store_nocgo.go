//go:build !cgo

package heredity

// If cgo is not enabled, we will use the modernc.org/sqlite non-cgo sqlite
// driver. It is slower than the sqlite3 cgo driver.

import (
	"strings"

	_ "modernc.org/sqlite"
)

const whichSQLiteDriver = "sqlite"

// sqliteDSN enables foreign keys through modernc's _pragma parameter; see
// https://www.rockyourcode.com/til-sqlite-foreign-key-support-with-go/
func sqliteDSN(uri string) string {
	if strings.Contains(uri, "?") {
		return uri + "&_pragma=foreign_keys(1)"
	}
	return uri + "?_pragma=foreign_keys(1)"
}
