// Package navigation defines which screens exist for each role and tracks
// the active screen with its back-stack.
//
// Topology is static data. Navigator is the mutable position within it and
// is reset to the role's root whenever the session changes.
package navigation
