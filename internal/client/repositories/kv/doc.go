// Package kv provides the durable key-value stores that back the client's
// persistence gateway.
//
// # Overview
//
// Store is a string-keyed byte store with whole-value writes. Three
// implementations are available:
//
//   - SQLiteStore  - default; a single `kv` table in a local SQLite file,
//     schema managed by embedded goose migrations (see OpenSQLite).
//   - NutsStore    - an embedded nutsdb directory, one bucket per store.
//   - MemoryStore  - volatile map, used by tests and the "memory" backend.
//
// # Contract
//
// Get returns (nil, nil) for a missing key. Set is a single atomic upsert of
// the full value. Delete of a missing key is a no-op. ReplaceAll swaps the
// whole keyspace in one transaction; with a nil map it empties the store.
//
// There is no versioning: several processes sharing one store race and the
// last full write of a key wins.
package kv
