// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging and timeouts via ShellExecutor, exposes
// OSCommandRunner for default process execution, and distinguishes tools that
// are absent from the lookup path from tools that ran and failed so callers
// can degrade gracefully instead of reporting false failures.
package execshell
