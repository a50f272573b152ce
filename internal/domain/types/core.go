package types

import (
	"strconv"
	"strings"
)

// ID is the opaque numeric identifier the API assigns to every record.
type ID int64

// String returns the decimal form of the identifier.
func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseID parses a decimal identifier. Zero and negative values are rejected.
func ParseID(s string) (ID, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return ID(n), true
}

// Role selects which half of the marketplace a user acts in.
// The zero value means no authenticated actor.
type Role string

const (
	RoleNone      Role = ""
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

// String returns the string form of the role.
func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the two marketplace roles.
func (r Role) Valid() bool { return r == RoleCandidate || r == RoleCompany }

// ParseRole converts a role name to a Role. Matching is case-insensitive so
// the server's CANDIDATE/COMPANY spelling is accepted. Unknown names return
// RoleNone and false.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "candidate":
		return RoleCandidate, true
	case "company":
		return RoleCompany, true
	default:
		return RoleNone, false
	}
}

// APIName returns the spelling the backend expects in request bodies.
func (r Role) APIName() string { return strings.ToUpper(string(r)) }

// LoadingState tracks session bootstrap progress.
type LoadingState int

const (
	LoadingRestoring LoadingState = iota
	LoadingReady
)

func (s LoadingState) String() string {
	switch s {
	case LoadingRestoring:
		return "restoring"
	case LoadingReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Resolved reports whether bootstrap has finished.
func (s LoadingState) Resolved() bool { return s != LoadingRestoring }
