// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/devinsight/internal/domain"
)

// Page size used for repository and organization listings.
const perPage = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchAccount(ctx context.Context, username string) (domain.RawAccount, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.RawRepository, error)
	FetchOrganizations(ctx context.Context, username string) ([]domain.RawOrganization, error)
}

// ClientConfig holds the settings shared by the REST and GraphQL gateways.
type ClientConfig struct {
	// Token is optional; when empty requests are sent unauthenticated.
	Token string
	// BaseURL overrides the REST endpoint, e.g. for GitHub Enterprise or tests.
	BaseURL string
	// GraphQLURL overrides the GraphQL endpoint.
	GraphQLURL string
	// Timeout bounds each upstream HTTP call. Zero disables it.
	Timeout time.Duration
}

// GitHubGateway is the REST implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// newHTTPClient attaches the credential, if any, to every outbound request.
func newHTTPClient(cfg ClientConfig) *http.Client {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client.Transport = &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: ts,
		}
	}
	return client
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(cfg ClientConfig, logger *log.Logger) (*GitHubGateway, error) {
	restClient := github.NewClient(newHTTPClient(cfg))
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.BaseURL, err)
		}
		restClient.BaseURL = baseURL
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

func (g *GitHubGateway) FetchAccount(ctx context.Context, username string) (domain.RawAccount, error) {
	g.logger.Printf("[1/3] Fetching account %s...\n", username)
	user, resp, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		if isNotFound(resp, err) {
			return domain.RawAccount{}, domain.NewNotFoundError(username)
		}
		return domain.RawAccount{}, upstreamError("account", err)
	}
	return decodeAccount(user), nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.RawRepository, error) {
	g.logger.Printf("[2/3] Fetching repositories of %s...\n", username)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, domain.NewNotFoundError(username)
		}
		return nil, upstreamError("repositories", err)
	}
	result := make([]domain.RawRepository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, decodeRepository(repo))
	}
	g.logger.Printf("Completed fetching %d repositories.\n", len(result))
	return result, nil
}

func (g *GitHubGateway) FetchOrganizations(ctx context.Context, username string) ([]domain.RawOrganization, error) {
	g.logger.Printf("[3/3] Fetching organizations of %s...\n", username)
	orgs, resp, err := g.restClient.Organizations.List(ctx, username, &github.ListOptions{PerPage: perPage})
	if err != nil {
		if isNotFound(resp, err) {
			return nil, domain.NewNotFoundError(username)
		}
		return nil, upstreamError("organizations", err)
	}
	result := make([]domain.RawOrganization, 0, len(orgs))
	for _, org := range orgs {
		result = append(result, domain.RawOrganization{
			Login:     org.GetLogin(),
			AvatarURL: org.GetAvatarURL(),
		})
	}
	return result, nil
}

func decodeAccount(user *github.User) domain.RawAccount {
	return domain.RawAccount{
		Name:        user.GetName(),
		Login:       user.GetLogin(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Location:    user.GetLocation(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
		HTMLURL:     user.GetHTMLURL(),
		CreatedAt:   user.GetCreatedAt().Time,
	}
}

func decodeRepository(repo *github.Repository) domain.RawRepository {
	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}
	return domain.RawRepository{
		Name:        repo.GetName(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Language:    repo.GetLanguage(),
		Topics:      topics,
		License:     repo.GetLicense().GetName(),
		Description: repo.GetDescription(),
		HTMLURL:     repo.GetHTMLURL(),
		UpdatedAt:   repo.GetUpdatedAt().Time,
	}
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

// upstreamError prefers the message GitHub put in the error body.
func upstreamError(what string, err error) error {
	wrapped := fmt.Errorf("failed to fetch %s from REST API: %w", what, err)
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Message != "" {
		return domain.NewUpstreamError(errResp.Message, wrapped)
	}
	return domain.NewUpstreamError(wrapped.Error(), wrapped)
}
