package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rolodexhq/rolodex/api/internal/config"
)

// Scopes requested from Google: read-only contacts plus the account email so
// the UI can show which account is connected.
var oauthScopes = []string{
	"https://www.googleapis.com/auth/contacts.readonly",
	"https://www.googleapis.com/auth/userinfo.email",
}

// NewOAuthConfig builds the OAuth2 config for the Google connection.
func NewOAuthConfig(cfg config.GoogleOAuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       oauthScopes,
		Endpoint:     google.Endpoint,
	}
}

// AuthURL returns the consent page URL. Offline access with forced consent
// guarantees a refresh token on every connect.
func AuthURL(cfg *oauth2.Config, state string) string {
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange swaps an authorization code for tokens.
func Exchange(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}
