// Package entity holds the persisted row types and the raw-SQL query
// functions that operate on them within an open transaction.
package entity

// ID is an externally assigned integer identifier. The synchronizer takes ids
// from the remote source verbatim; the simple create API assigns max+1.
type ID = int32
