// Package rbac maps marketplace roles to the write actions they may take.
package rbac

import (
	"fmt"

	"ptjobs/internal/domain"
)

// Permission is a write action in the marketplace.
type Permission int

const (
	PermApply Permission = iota + 1
	PermFollow
	PermPostJob
)

var permissionMatrix = map[domain.Role]map[Permission]bool{
	domain.RoleCandidate: {
		PermApply:  true,
		PermFollow: true,
	},
	domain.RoleCompany: {
		PermPostJob: true,
	},
}

// HasPermission reports whether role may perform perm.
func HasPermission(role domain.Role, perm Permission) bool {
	return permissionMatrix[role][perm]
}

// Require returns a descriptive error when role lacks perm.
func Require(role domain.Role, perm Permission) error {
	if HasPermission(role, perm) {
		return nil
	}
	if !role.Valid() {
		return fmt.Errorf("permission denied: %s requires a signed-in user", perm)
	}
	return fmt.Errorf("permission denied: %s is not available to %s accounts", perm, role)
}

func (p Permission) String() string {
	switch p {
	case PermApply:
		return "apply"
	case PermFollow:
		return "follow"
	case PermPostJob:
		return "post_job"
	default:
		return "unknown"
	}
}
