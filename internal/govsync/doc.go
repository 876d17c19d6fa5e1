// Package govsync detects and repairs drift between the canonical copies of
// shared governance files and their mirrors in sibling repositories.
//
// Drift is measured by byte-exact content comparison only; modification times
// and file sizes are never consulted, so a formatting-preserving copy is
// indistinguishable from a hand-edited but content-identical file.
package govsync
