package service

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"github.com/NadeeshaMedagama/modgoviya/internal/config"
)

// OAuthProvider wraps one third-party identity provider's authorization-code
// flow. The storefront sends the shopper to AuthURL, receives the code on the
// redirect and exchanges it for the provider access token that
// Session.LoginWithProvider then trades in.
type OAuthProvider struct {
	Name   string
	Config *oauth2.Config
}

func (p *OAuthProvider) AuthURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *OAuthProvider) Exchange(c context.Context, code string) (*oauth2.Token, error) {
	token, err := p.Config.Exchange(c, code)
	if err != nil {
		return nil, fmt.Errorf("failed exchanging %s code with error=%w", p.Name, err)
	}
	return token, nil
}

// OAuthProviders builds the configured providers; ones without credentials
// are left out.
func OAuthProviders(cfg config.OAuth) map[string]*OAuthProvider {
	providers := map[string]*OAuthProvider{}
	if cfg.Google.ClientID != "" && cfg.Google.ClientSecret != "" {
		providers["google"] = &OAuthProvider{
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				RedirectURL:  cfg.Google.RedirectUrl,
				Scopes: []string{
					"https://www.googleapis.com/auth/userinfo.email",
					"https://www.googleapis.com/auth/userinfo.profile",
				},
				Endpoint: google.Endpoint,
			},
		}
	}
	if cfg.Facebook.ClientID != "" && cfg.Facebook.ClientSecret != "" {
		providers["facebook"] = &OAuthProvider{
			Name: "facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.Facebook.ClientID,
				ClientSecret: cfg.Facebook.ClientSecret,
				RedirectURL:  cfg.Facebook.RedirectUrl,
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
		}
	}
	return providers
}
