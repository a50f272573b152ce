// Package domain defines the marketplace records, session and navigation
// types, and the contracts between services. It holds plain types (wire and
// state) and interfaces only; exports.go re-exports both subpackages.
package domain
