package storage

import "strings"

// ForPath selects a storage backend by file extension: a .json path gets the
// plain-file store, anything else the SQLite store.
//
// Concurrency note:
//   - Neither backend is safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple habitkeep processes against the same store path is not
//     supported and may lead to data loss or corruption.
func ForPath(path string) Provider {
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
