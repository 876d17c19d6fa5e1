// Package ui renders human-readable output for the governance CLI: check
// status markers, per-file sync lines, and external tool lifecycle events.
package ui
