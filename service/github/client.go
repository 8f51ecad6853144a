package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/viant/gitroast/model/profile"
	"github.com/viant/gitroast/tracing"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout bounds each lookup call.
const DefaultTimeout = 10 * time.Second

// ErrSubjectNotFound is returned when a lookup reports that the subject does
// not exist or access failed. The core does not distinguish between the two;
// both collapse to this single failure signal.
var ErrSubjectNotFound = errors.New("subject not found")

// Client performs read-only, idempotent lookups against the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithToken sets a bearer token raising the API rate limit.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each lookup call.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// NewClient creates a lookup client with bounded call timeouts.
func NewClient(options ...ClientOption) *Client {
	ret := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// userPayload mirrors the subset of the GitHub user resource the roast needs.
type userPayload struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	Location    string `json:"location"`
	Company     string `json:"company"`
	Blog        string `json:"blog"`
	CreatedAt   string `json:"created_at"`
	AvatarURL   string `json:"avatar_url"`
}

// repoPayload mirrors the subset of the GitHub repository resource the roast
// needs.
type repoPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	OpenIssues  int      `json:"open_issues_count"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Topics      []string `json:"topics"`
	Fork        bool     `json:"fork"`
}

// LookupProfile fetches and normalizes the subject's profile. Any non-2xx
// response or transport failure collapses to ErrSubjectNotFound.
func (c *Client) LookupProfile(ctx context.Context, username string) (*profile.Profile, error) {
	var payload userPayload
	URL := fmt.Sprintf("%s/users/%s", c.baseURL, username)
	if err := c.get(ctx, URL, &payload); err != nil {
		return nil, err
	}
	ret := &profile.Profile{
		Username:    payload.Login,
		Name:        payload.Name,
		Bio:         payload.Bio,
		Followers:   payload.Followers,
		Following:   payload.Following,
		PublicRepos: payload.PublicRepos,
		Location:    payload.Location,
		Company:     payload.Company,
		Blog:        payload.Blog,
		CreatedAt:   payload.CreatedAt,
		AvatarURL:   payload.AvatarURL,
	}
	ret.Normalize()
	return ret, nil
}

// LookupRepositories fetches and normalizes the subject's repositories,
// most recently updated first. Any non-2xx response or transport failure
// collapses to ErrSubjectNotFound.
func (c *Client) LookupRepositories(ctx context.Context, username string) ([]profile.Repository, error) {
	var payload []repoPayload
	URL := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.baseURL, username)
	if err := c.get(ctx, URL, &payload); err != nil {
		return nil, err
	}
	ret := make([]profile.Repository, 0, len(payload))
	for _, repo := range payload {
		item := profile.Repository{
			Name:        repo.Name,
			Description: repo.Description,
			Language:    repo.Language,
			Stars:       repo.Stars,
			Forks:       repo.Forks,
			OpenIssues:  repo.OpenIssues,
			CreatedAt:   repo.CreatedAt,
			UpdatedAt:   repo.UpdatedAt,
			Topics:      repo.Topics,
			Fork:        repo.Fork,
		}
		item.Normalize()
		ret = append(ret, item)
	}
	return ret, nil
}

func (c *Client) get(ctx context.Context, URL string, target interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "github.get", "CLIENT")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"http.url": URL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubjectNotFound, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubjectNotFound, err)
	}
	defer res.Body.Close()
	span.SetStatusFromHTTPCode(res.StatusCode)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d", ErrSubjectNotFound, URL, res.StatusCode)
	}
	if err = json.NewDecoder(res.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %v", ErrSubjectNotFound, err)
	}
	return nil
}
