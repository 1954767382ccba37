package pianohands

import (
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/storage"
)

// NewSQLiteStorage opens (or creates) the sqlite analysis store at
// the given path and adapts it to the Storage interface.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	if dbPath == "" {
		return storage.NewDBClient()
	}
	return storage.NewDBClientWithPath(dbPath)
}
