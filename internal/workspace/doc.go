// Package workspace locates governance sync targets: sibling repositories of
// the canonical source repository inside one workspace root.
package workspace
