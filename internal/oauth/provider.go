package oauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/slopengine/slopengine/internal/config"
	"golang.org/x/oauth2"
)

// Provider identifies a supported OAuth identity provider
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

var (
	// ErrUnknownProvider is returned for provider names that are not
	// supported or not configured with both a client id and secret
	ErrUnknownProvider = errors.New("unknown oauth provider")

	// ErrMissingEmail is returned when a provider cannot supply a usable
	// email address, leaving no key to resolve a local user
	ErrMissingEmail = errors.New("oauth profile has no usable email")
)

// ParseProvider maps a path segment onto the closed provider set
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderGitHub:
		return ProviderGitHub, nil
	default:
		return "", fmt.Errorf("provider %q: %w", name, ErrUnknownProvider)
	}
}

// Profile is the normalized result of a provider identity lookup,
// constructed per callback and discarded after user resolution.
type Profile struct {
	Email     string
	Name      string
	AvatarURL string
	Provider  Provider
}

// Client is the capability set every registered provider implements
type Client interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// Registry holds the configured provider clients. It is built once at
// startup and read-only afterwards.
type Registry struct {
	clients map[Provider]Client
}

// NewRegistry registers every provider whose client id and secret are both
// configured. A provider with only one of the two stays unregistered.
func NewRegistry(cfg config.OAuthConfig, serverBaseURL string) *Registry {
	r := &Registry{clients: make(map[Provider]Client)}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		r.Register(ProviderGoogle, NewGoogleClient(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			callbackURL(serverBaseURL, ProviderGoogle),
		))
	}

	if cfg.GitHubClientID != "" && cfg.GitHubClientSecret != "" {
		r.Register(ProviderGitHub, NewGitHubClient(
			cfg.GitHubClientID,
			cfg.GitHubClientSecret,
			callbackURL(serverBaseURL, ProviderGitHub),
		))
	}

	return r
}

// Register adds a provider client to the registry
func (r *Registry) Register(provider Provider, client Client) {
	r.clients[provider] = client
}

// Client returns the client for a registered provider
func (r *Registry) Client(provider Provider) (Client, error) {
	client, ok := r.clients[provider]
	if !ok {
		return nil, fmt.Errorf("provider %q is not configured: %w", provider, ErrUnknownProvider)
	}
	return client, nil
}

func callbackURL(baseURL string, provider Provider) string {
	return fmt.Sprintf("%s/api/v1/oauth/%s/callback", baseURL, provider)
}
