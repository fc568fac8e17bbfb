package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gh "github.com/google/go-github/v62/github"
	"github.com/kevinmichaelchen/trend-digest/internal/logging"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
	"golang.org/x/oauth2"
)

// PageSize caps every search call. There is no pagination.
const PageSize = 5

// Client is a thin wrapper around the GitHub repository search API.
type Client struct {
	gh     *gh.Client
	now    func() time.Time
	logger *slog.Logger
}

// NewClient returns a search client. An empty token makes unauthenticated
// calls, which GitHub rate-limits more strictly.
func NewClient(token string) *Client {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   http.DefaultTransport,
				Source: ts,
			},
		}
	}
	return &Client{
		gh:     gh.NewClient(httpClient),
		now:    time.Now,
		logger: logging.New("github"),
	}
}

// Trending returns the most-starred repos matching term inside window.
// Failures are logged and yield an empty slice so one bad domain never
// aborts a digest.
func (c *Client) Trending(ctx context.Context, term string, window models.DateWindow) []models.Repo {
	query := fmt.Sprintf("%s %s", term, window.Qualifier(c.now()))

	repos, err := c.SearchRepositories(ctx, query)
	if err != nil {
		c.logger.Error("repository search failed", "term", term, "query", query, "error", err)
		return []models.Repo{}
	}
	c.logger.Info("repository search complete", "term", term, "count", len(repos))
	return repos
}

// SearchRepositories runs query sorted by stars, descending, one page of
// PageSize results.
func (c *Client) SearchRepositories(ctx context.Context, query string) ([]models.Repo, error) {
	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: PageSize},
	}
	result, _, err := c.gh.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching repositories: %w", err)
	}

	repos := make([]models.Repo, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		repos = append(repos, toRepo(r))
	}
	return repos, nil
}

func toRepo(r *gh.Repository) models.Repo {
	return models.Repo{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.Description,
		URL:         r.GetHTMLURL(),
		Language:    r.Language,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}
