package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleClient implements the provider client capability set for Google.
// Google exposes the email directly on the OpenID userinfo endpoint, so a
// single lookup resolves the profile.
type GoogleClient struct {
	conf        *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogleClient creates a Google OAuth client
func NewGoogleClient(clientID, clientSecret, redirectURL string) *GoogleClient {
	return &GoogleClient{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: defaultGoogleUserInfoURL,
		httpClient:  http.DefaultClient,
	}
}

// AuthCodeURL builds the provider authorization URL
func (c *GoogleClient) AuthCodeURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// Exchange exchanges the authorization code for a provider access token
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// FetchProfile fetches the normalized profile from the userinfo endpoint
func (c *GoogleClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	var info googleUserInfo
	if err := c.getJSON(ctx, c.userInfoURL, token, &info); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	if info.Email == "" {
		return nil, ErrMissingEmail
	}

	return &Profile{
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
		Provider:  ProviderGoogle,
	}, nil
}

func (c *GoogleClient) getJSON(ctx context.Context, url string, token *oauth2.Token, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
