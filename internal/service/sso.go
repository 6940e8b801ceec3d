package service

import (
	"context"
	"fmt"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"github.com/idrsdev/agile-task/core/config"
)

// SSOIdentity is the profile an identity provider vouches for.
type SSOIdentity struct {
	ProviderUserID string
	Email          string
	Name           string
}

// SSOProvider abstracts the hosted sign-in flow.
type SSOProvider interface {
	AuthorizationURL(state string) (string, error)
	Authenticate(ctx context.Context, code string) (*SSOIdentity, error)
}

type workOSProvider struct {
	cfg config.WorkOSConfig
}

// NewWorkOSProvider returns nil when WorkOS is not configured.
func NewWorkOSProvider(cfg config.WorkOSConfig) SSOProvider {
	if !cfg.Enabled() {
		return nil
	}
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workOSProvider{cfg: cfg}
}

func (p *workOSProvider) AuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (p *workOSProvider) Authenticate(ctx context.Context, code string) (*SSOIdentity, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticating with code: %w", err)
	}
	return &SSOIdentity{
		ProviderUserID: resp.User.ID,
		Email:          resp.User.Email,
		Name:           buildUserName(resp.User),
	}, nil
}

func buildUserName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}
