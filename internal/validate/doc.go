// Package validate runs the ordered compliance check suite against one
// repository's instruction and configuration artifacts.
//
// Which checks apply to which repository archetype is data (an applicability
// table per check), not control flow; checks that do not apply to an
// archetype surface as Skip results so every suite reports the same ordered
// check list.
package validate
