// Package repotype classifies a repository directory into one of the fixed
// SecPal archetypes from filesystem marker evidence.
package repotype
