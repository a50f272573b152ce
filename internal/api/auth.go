package api

import (
	"context"
	"fmt"
	"strings"

	"ptjobs/internal/domain"
)

// Token exchanges a password grant for an access token.
func (c *Client) Token(ctx context.Context, grant domain.PasswordGrant) (domain.TokenResponse, error) {
	if grant.GrantType == "" {
		grant.GrantType = domain.GrantTypePassword
	}
	var out domain.TokenResponse
	if err := c.post(ctx, PathToken, grant, &out); err != nil {
		return domain.TokenResponse{}, err
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return domain.TokenResponse{}, fmt.Errorf("%w: token reply has no access_token", ErrMalformedResponse)
	}
	return out, nil
}

// CurrentUser fetches the profile that token belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (domain.Profile, error) {
	var out domain.Profile
	if err := c.WithToken(token).getJSON(ctx, PathCurrentUser, nil, &out); err != nil {
		return domain.Profile{}, err
	}
	if err := ValidateProfile(out); err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, reg domain.Registration) (domain.RegisterResponse, error) {
	if role, ok := domain.ParseRole(reg.Role); ok {
		reg.Role = role.APIName()
	}
	var out domain.RegisterResponse
	if err := c.post(ctx, PathUsers, reg, &out); err != nil {
		return domain.RegisterResponse{}, err
	}
	return out, nil
}

// ValidateProfile rejects user records the session cannot be built from.
func ValidateProfile(p domain.Profile) error {
	if _, ok := domain.ParseRole(p.Role); !ok {
		return fmt.Errorf("%w: user role %q", ErrMalformedResponse, p.Role)
	}
	if p.Username == "" && p.DisplayName() == "" {
		return fmt.Errorf("%w: user has neither username nor name", ErrMalformedResponse)
	}
	return nil
}

// Compile-time assertion that Client implements domain.AuthClient.
var _ domain.AuthClient = (*Client)(nil)
