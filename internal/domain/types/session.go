package types

import "strings"

// Profile is the user-visible identity returned by /users/current-user/.
type Profile struct {
	ID        ID     `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Role      string `json:"role,omitempty"`
}

// DisplayName prefers Name, then "First Last", then Username.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if full := strings.TrimSpace(p.FirstName + " " + p.LastName); full != "" {
		return full
	}
	return p.Username
}

// Session is the process-wide record of the current authenticated actor.
//
// Token, Role and Profile are set and cleared together. The one exception is
// a degraded restore, where a stored profile failed to parse and Profile is
// nil while Token and Role are honoured.
type Session struct {
	Token   string       `json:"-"`
	Role    Role         `json:"role"`
	Profile *Profile     `json:"profile,omitempty"`
	Loading LoadingState `json:"-"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool { return s.Token != "" }

// Degraded reports a restored session that lost its profile.
func (s Session) Degraded() bool { return s.Token != "" && s.Profile == nil }

// Clone returns a deep copy so callers cannot mutate the store's state.
func (s Session) Clone() Session {
	out := s
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return out
}

// Credentials is the username/password pair for the password grant.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the payload accepted by POST /users/.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// Credentials returns the login pair embedded in the registration.
func (r Registration) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password}
}
