// Package generate drives builder generation for a set of source files.
//
// For each file every selected record is compiled and synthesized, and the
// result is rendered into the file's companion. A compile error fails that
// file only; the remaining files are still processed. When a ledger is
// attached, outputs whose fingerprint and on-disk content match the last
// recorded run are left alone without rendering, and each run is recorded.
package generate
