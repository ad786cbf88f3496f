// Package passes is the local store of the gate device: a SQLite table
// holding the active passes fetched by the last successful sync.
//
// The table is replaced wholesale by ReplaceAll inside one transaction, so a
// reader sees either the previous snapshot or the new one, never a mix. No
// other method writes. Lookups return copies; nothing derived at read time
// (such as expiry) is stored.
//
// Lookup misses are reported as common.ErrorNotFound. Failures of the
// underlying database are wrapped with common.ErrStorageUnavailable.
package passes
