package types

// PasswordGrant is the OAuth2 password-grant body posted to /o/token/.
type PasswordGrant struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

// GrantTypePassword is the only grant the client issues.
const GrantTypePassword = "password"

// TokenResponse is the /o/token/ reply. Some deployments embed the user.
type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type,omitempty"`
	ExpiresIn    int      `json:"expires_in,omitempty"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	Scope        string   `json:"scope,omitempty"`
	User         *Profile `json:"user,omitempty"`
}

// RegisterResponse is the /users/ reply. Token is only present on backends
// that sign the user in on registration.
type RegisterResponse struct {
	Profile
	Token string   `json:"token,omitempty"`
	User  *Profile `json:"user,omitempty"`
}
