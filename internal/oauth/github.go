package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const defaultGitHubAPIBaseURL = "https://api.github.com"

// GitHubClient implements the provider client capability set for GitHub.
// GitHub may omit the email on the profile, so resolving one takes two
// lookups: the profile itself and the account's email list.
type GitHubClient struct {
	conf       *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
}

// NewGitHubClient creates a GitHub OAuth client
func NewGitHubClient(clientID, clientSecret, redirectURL string) *GitHubClient {
	return &GitHubClient{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     github.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"user:email"},
		},
		apiBaseURL: defaultGitHubAPIBaseURL,
		httpClient: http.DefaultClient,
	}
}

// AuthCodeURL builds the provider authorization URL
func (c *GitHubClient) AuthCodeURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// Exchange exchanges the authorization code for a provider access token
func (c *GitHubClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

type githubUserInfo struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// FetchProfile fetches the profile and email list and normalizes them.
// Email resolution order: primary verified address from the email list,
// then the profile email field, then ErrMissingEmail.
func (c *GitHubClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	var info githubUserInfo
	if err := c.getJSON(ctx, c.apiBaseURL+"/user", token, &info); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	var emails []githubEmail
	if err := c.getJSON(ctx, c.apiBaseURL+"/user/emails", token, &emails); err != nil {
		return nil, fmt.Errorf("failed to fetch user emails: %w", err)
	}

	email := selectPrimaryEmail(emails)
	if email == "" {
		email = info.Email
	}
	if email == "" {
		return nil, ErrMissingEmail
	}

	return &Profile{
		Email:     email,
		Name:      info.Name,
		AvatarURL: info.AvatarURL,
		Provider:  ProviderGitHub,
	}, nil
}

func selectPrimaryEmail(emails []githubEmail) string {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}

func (c *GitHubClient) getJSON(ctx context.Context, url string, token *oauth2.Token, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
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
