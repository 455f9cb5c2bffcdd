// Package store provides single-file-per-type durable storage for todolor
// records.
//
// Each entity type (e.g. "task") is stored in one file named after the type
// inside the store directory. A file holds:
//   - Counter: the last assigned id, a 2-byte big-endian unsigned integer
//   - Entities: a UTF-8 JSON array of records, in insertion order
//
// The whole file is passed through cipher.Encode before it is written and
// cipher.Decode after it is read. An empty file is a valid "no records"
// state with no counter.
//
// # Invariants
//
//   - Ids are assigned by the store, start at 0 and only increase.
//     A deleted id is never handed out again.
//   - The counter cannot exceed MaxID (65535). Add fails with OVERFLOW once
//     it is reached; there is no reindexing.
//   - Every record leaf is a string or a number.
//   - Every mutation is a read-modify-write of the entire file. Validation
//     and lookup failures happen before the write, so a failed call never
//     touches the file.
//
// # Concurrency
//
// A Store is not safe for concurrent use. Across processes, every operation
// holds an exclusive flock(2) on the ".lock" file in the store directory
// (unix only), which serializes read-modify-write cycles.
package store
