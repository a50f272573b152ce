package navigation

import (
	"errors"
	"slices"

	"ptjobs/internal/domain"
)

// Destinations.
const (
	Home      domain.Destination = "Home"
	Jobs      domain.Destination = "Jobs"
	Companies domain.Destination = "Companies"
	Chat      domain.Destination = "Chat"
	Profile   domain.Destination = "Profile"
	Posts     domain.Destination = "Posts"

	JobDetail       domain.Destination = "JobDetail"
	CompanyDetail   domain.Destination = "CompanyDetail"
	CandidateDetail domain.Destination = "CandidateDetail"
	PostDetail      domain.Destination = "PostDetail"
	Notifications   domain.Destination = "Notifications"

	Login    domain.Destination = "Login"
	Register domain.Destination = "Register"
)

// Parameter names.
const (
	ParamJobID       = "jobId"
	ParamCompanyID   = "companyId"
	ParamCandidateID = "candidateId"
	ParamPostID      = "postId"
	ParamNext        = "next"
)

var (
	ErrUnknownDestination = errors.New("navigation: unknown destination")
	ErrNotPermitted       = errors.New("navigation: destination not available for role")
)

// Topology is the static screen graph.
type Topology struct {
	tabs     map[domain.Role][]domain.Destination
	shared   []domain.Destination
	required map[domain.Destination][]string
	optional map[domain.Destination][]string
}

// Default returns the marketplace screen graph. The zero role maps to the
// unauthenticated flow.
func Default() *Topology {
	return &Topology{
		tabs: map[domain.Role][]domain.Destination{
			domain.RoleNone:      {Login, Register},
			domain.RoleCandidate: {Home, Jobs, Companies, Chat, Profile},
			domain.RoleCompany:   {Home, Posts, Chat, Profile},
		},
		shared: []domain.Destination{JobDetail, CompanyDetail, CandidateDetail, PostDetail, Notifications},
		required: map[domain.Destination][]string{
			JobDetail:       {ParamJobID},
			CompanyDetail:   {ParamCompanyID},
			CandidateDetail: {ParamCandidateID},
			PostDetail:      {ParamPostID},
		},
		optional: map[domain.Destination][]string{
			Login: {ParamNext},
		},
	}
}

// Tabs returns the primary destinations for role in display order.
func (t *Topology) Tabs(role domain.Role) []domain.Destination {
	return slices.Clone(t.tabs[role])
}

// Shared returns the detail screens every authenticated role can open.
func (t *Topology) Shared() []domain.Destination {
	return slices.Clone(t.shared)
}

// Root returns the screen a role lands on.
func (t *Topology) Root(role domain.Role) domain.Destination {
	tabs := t.tabs[role]
	if len(tabs) == 0 {
		return Login
	}
	return tabs[0]
}

// Known reports whether dest exists for any role.
func (t *Topology) Known(dest domain.Destination) bool {
	for _, tabs := range t.tabs {
		if slices.Contains(tabs, dest) {
			return true
		}
	}
	return slices.Contains(t.shared, dest)
}

// Reachable reports whether role may open dest.
func (t *Topology) Reachable(role domain.Role, dest domain.Destination) bool {
	if slices.Contains(t.tabs[role], dest) {
		return true
	}
	return role.Valid() && slices.Contains(t.shared, dest)
}

// RequiredParams names the params dest needs to render real content.
func (t *Topology) RequiredParams(dest domain.Destination) []string {
	return slices.Clone(t.required[dest])
}

// OptionalParams names the params dest understands but does not need.
func (t *Topology) OptionalParams(dest domain.Destination) []string {
	return slices.Clone(t.optional[dest])
}

// MissingParams returns the required params absent or empty in p.
func (t *Topology) MissingParams(dest domain.Destination, p domain.Params) []string {
	var missing []string
	for _, k := range t.required[dest] {
		if p[k] == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// check classifies dest for role.
func (t *Topology) check(role domain.Role, dest domain.Destination) error {
	if !t.Known(dest) {
		return ErrUnknownDestination
	}
	if !t.Reachable(role, dest) {
		return ErrNotPermitted
	}
	return nil
}
