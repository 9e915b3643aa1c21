// Package kv is the key-value persistence layer of the docvault client.
//
// All state lives under a handful of keys, each holding a JSON document:
//
//	user              the active session (may be absent)
//	users             the user registry
//	documents_<id>    one document partition per user
//
// Repository is the get/set/remove contract. SQLiteRepository and
// PostgresRepository implement it over a dbx.DBTX, so the same code runs on a
// *sql.DB or inside a transaction. DBStore bundles a repository with its
// database and adds InTx for multi-key writes.
//
// Get returns (nil, nil) for an absent key.
package kv
