// Package storage persists the download index: report timestamp key → source URL.
//
// The index is a resumable cache consulted before each download so that
// reports already on disk are not fetched again. Store has three
// implementations: MemoryStore for tests, FileStore (a JSON file in the data
// directory, the default) and sqlite.Store in the sqlite subpackage.
// Concurrent writers are not supported.
package storage
