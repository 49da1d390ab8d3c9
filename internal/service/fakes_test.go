package service

import (
	"context"
	"errors"
	"sync"

	"github.com/slopengine/slopengine/internal/domain"
	"github.com/slopengine/slopengine/internal/oauth"
	"github.com/slopengine/slopengine/internal/repository"
	"golang.org/x/oauth2"
)

// fakeUserRepo is an in-memory UserRepository. Behavior can be overridden
// per-test through the func fields.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User

	createFn     func(ctx context.Context, user *domain.User) error
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.createFn != nil {
		return r.createFn(ctx, user)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.getByEmailFn != nil {
		return r.getByEmailFn(ctx, email)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeVideoRepo is an in-memory VideoRepository
type fakeVideoRepo struct {
	mu     sync.Mutex
	nextID int64
	videos []*domain.GeneratedVideo

	createFn func(ctx context.Context, video *domain.GeneratedVideo) error
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{}
}

func (r *fakeVideoRepo) Create(ctx context.Context, video *domain.GeneratedVideo) error {
	if r.createFn != nil {
		return r.createFn(ctx, video)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	video.ID = r.nextID
	stored := *video
	r.videos = append(r.videos, &stored)
	return nil
}

func (r *fakeVideoRepo) GetByVideoID(ctx context.Context, videoID string) (*domain.GeneratedVideo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, video := range r.videos {
		if video.VideoID == videoID {
			copied := *video
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeVideoRepo) GetByUserID(ctx context.Context, userID int64) ([]*domain.GeneratedVideo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.GeneratedVideo
	for _, video := range r.videos {
		if video.UserID == userID {
			copied := *video
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeStateStore tracks issued states in memory
type fakeStateStore struct {
	mu     sync.Mutex
	states map[string]bool

	issueErr   error
	consumeErr error
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: make(map[string]bool)}
}

func (s *fakeStateStore) Issue(ctx context.Context) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := "test-state"
	s.states[state] = true
	return state, nil
}

func (s *fakeStateStore) Consume(ctx context.Context, state string) error {
	if s.consumeErr != nil {
		return s.consumeErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.states[state] {
		return errors.New("unknown or expired state")
	}
	delete(s.states, state)
	return nil
}

// fakeOAuthClient implements oauth.Client with canned responses
type fakeOAuthClient struct {
	authURL      string
	exchangeErr  error
	profile      *oauth.Profile
	profileErr   error
	lastAuthCode string
}

func (c *fakeOAuthClient) AuthCodeURL(state string) string {
	return c.authURL + "?state=" + state
}

func (c *fakeOAuthClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if c.exchangeErr != nil {
		return nil, c.exchangeErr
	}
	c.lastAuthCode = code
	return &oauth2.Token{AccessToken: "provider-token"}, nil
}

func (c *fakeOAuthClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*oauth.Profile, error) {
	if c.profileErr != nil {
		return nil, c.profileErr
	}
	return c.profile, nil
}

// fakeEnhancer records the last prompt and returns a canned enhancement
type fakeEnhancer struct {
	result string
	err    error

	lastPrompt string
	lastStyle  string
}

func (e *fakeEnhancer) Enhance(ctx context.Context, prompt, style string) (string, error) {
	e.lastPrompt = prompt
	e.lastStyle = style
	if e.err != nil {
		return "", e.err
	}
	if e.result == "" {
		return prompt, nil
	}
	return e.result, nil
}
