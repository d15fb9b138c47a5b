// Package orderedbatch processes a batch of records with per-key ordering and
// bounded concurrency.
//
// It combines:
//   - an insertion-ordered grouping of items by ordering key
//   - errgroup for running groups with a concurrency limit
//   - an internal actor-style manager loop that owns per-batch progress state
//
// Core behavior:
//   - items with the same key run one at a time, in input order
//   - groups with different keys run concurrently, at most N at a time
//   - the first failure in a group stops that group only
//   - unprocessed items are returned in input order
//
// Semantics:
//   - ProcessOrdered returns an error only for invalid arguments
//   - an unprocessed record with a non-nil Err is the item that failed
//   - an unprocessed record with a nil Err was skipped behind that failure
//   - BatchResult.Err returns nil, or a *BatchError with one cause per failed group
//
// Finalize modes:
//   - ModeFailFast: return the *BatchError, failing the whole batch
//   - ModePartial: return the identifiers of every unprocessed item
//
// Items without a natural ordering key should get a unique key from KeyFunc,
// for example a fresh UUID; they then never wait on each other.
package orderedbatch
