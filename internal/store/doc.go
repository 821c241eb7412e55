// Package store is the SQLite-backed generation ledger.
//
// Every generate run appends a row to runs. The artifacts table keeps the
// latest state of each output file: the fingerprint of the records and
// settings it was rendered from and the hash of the bytes written. The
// driver compares against it to skip rewriting outputs whose inputs have
// not changed.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: artifacts must reference a recorded run
//
// Runs are ordered by their logical seq, assigned on insert.
package store
