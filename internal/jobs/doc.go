// Package jobs provides the in-memory job listing store and its query engine.
//
// The package is independent of any transport: the HTTP server, the console
// CLI and tests all drive the same [Store].
//
// # Loading
//
// A [Store] wraps a [Source] (a CSV file or a PostgreSQL table) and loads it
// lazily, on the first query. A successful load happens once per Store. A
// failed load is logged and returned as an error wrapping [ErrNotLoaded]; the
// store stays unloaded and the next query tries again.
//
// # Queries
//
//   - [Store.ListDistinctValues]: first-seen distinct values of one column
//   - [Store.ListAll]: every record in composite order
//   - [Store.SearchByFieldAndValue]: substring match in one column
//   - [Store.SearchAnyField]: substring match in any column
//
// Matching is case-insensitive substring containment. Results are ordered by
// name, position type, core competency, employer and location (ascending,
// case-insensitive). Field searches additionally order by the searched column
// first.
//
// # Error Handling
//
// Errors are mapped to user-facing messages with [MapError]:
//
//   - JOB001-JOB002: query errors (unknown field, data not loaded)
//   - FILE002-FILE005: source file problems
//   - UPL004-UPL005: cancelled or timed out requests
package jobs
