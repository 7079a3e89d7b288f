// Package semdom converts HTML into a semantically-typed, uniquely-indexed
// tree for consumption by automated agents: every node carries an inferred
// role, a label, an optional intent, and accessibility metadata. On top of
// the tree it computes an agent-readiness certification score and an explicit
// state graph of interaction states and navigation transitions, and renders
// all three into token-efficient text formats.
//
// One Parse call produces one immutable Document. There is no incremental
// update path: a changed page requires a fresh parse.
package semdom

// Version identifies the document format emitted by this package.
const Version = "0.3.1"

// Standard is the draft standard reference carried in serialized documents.
const Standard = "ISO/IEC-SDOM-SSG-DRAFT-2024"
