package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/service/importer"
)

const (
	connectionsPageSize = 1000
	personFields        = "names,emailAddresses,phoneNumbers,organizations,photos"
)

// Client fetches contact data from the Google People API on behalf of a
// connected user.
type Client struct {
	oauth *oauth2.Config
}

// NewClient wires a People API client around the OAuth config.
func NewClient(oauth *oauth2.Config) *Client {
	return &Client{oauth: oauth}
}

// tokenSource wraps stored credentials; the underlying source refreshes the
// access token transparently when it has expired.
func (c *Client) tokenSource(ctx context.Context, token *entity.GoogleToken) oauth2.TokenSource {
	return c.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	})
}

// FetchContacts pulls the user's full connections list, following page
// tokens until exhausted, and normalizes every person into a candidate.
// People without a display name are dropped.
func (c *Client) FetchContacts(ctx context.Context, token *entity.GoogleToken) ([]importer.Candidate, error) {
	svc, err := people.NewService(ctx, option.WithTokenSource(c.tokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}

	var candidates []importer.Candidate
	pageToken := ""
	for {
		call := svc.People.Connections.List("people/me").
			PageSize(connectionsPageSize).
			PersonFields(personFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list connections: %w", err)
		}

		for _, person := range resp.Connections {
			if candidate := importer.FromPerson(person); candidate != nil {
				candidates = append(candidates, *candidate)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return candidates, nil
}

// UserEmail returns the email of the Google account behind the token.
func (c *Client) UserEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(c.oauth.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("create oauth2 service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch userinfo: %w", err)
	}
	return info.Email, nil
}
