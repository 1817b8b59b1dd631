package heredity

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome replaces a leading ~/ in path with the current user's home
// directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", pfx.Err(err)
	}
	return filepath.Join(home, path[2:]), nil
}

func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}
