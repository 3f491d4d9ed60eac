package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/devinsight/internal/domain"
)

// GitHub answers unknown logins with this error instead of a 404.
const unresolvedUserMessage = "Could not resolve to a User"

// ErrTokenRequired is returned when the GraphQL gateway is built without a credential.
var ErrTokenRequired = errors.New("the GraphQL API requires a GitHub token")

// GraphQLGateway implements Fetcher on top of the GitHub GraphQL API.
type GraphQLGateway struct {
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// accountQuery mirrors the fields of GET /users/{login}.
type accountQuery struct {
	User struct {
		Login     string
		Name      string
		AvatarURL string `graphql:"avatarUrl"`
		Bio       string
		Location  string
		URL       string `graphql:"url"`
		CreatedAt githubv4.DateTime
		Followers struct {
			TotalCount int
		}
		Following struct {
			TotalCount int
		}
		Repositories struct {
			TotalCount int
		} `graphql:"repositories(privacy: PUBLIC, ownerAffiliations: OWNER)"`
	} `graphql:"user(login: $login)"`
}

// repositoriesQuery returns the 100 most recently updated public repositories.
type repositoriesQuery struct {
	User struct {
		Repositories struct {
			Nodes []struct {
				Name            string
				StargazerCount  int
				ForkCount       int
				Description     string
				URL             string `graphql:"url"`
				UpdatedAt       githubv4.DateTime
				PrimaryLanguage struct {
					Name string
				}
				LicenseInfo struct {
					Name string
				}
				RepositoryTopics struct {
					Nodes []struct {
						Topic struct {
							Name string
						}
					}
				} `graphql:"repositoryTopics(first: 20)"`
			}
		} `graphql:"repositories(first: 100, privacy: PUBLIC, ownerAffiliations: OWNER, orderBy: {field: UPDATED_AT, direction: DESC})"`
	} `graphql:"user(login: $login)"`
}

type organizationsQuery struct {
	User struct {
		Organizations struct {
			Nodes []struct {
				Login     string
				AvatarURL string `graphql:"avatarUrl"`
			}
		} `graphql:"organizations(first: 100)"`
	} `graphql:"user(login: $login)"`
}

// NewGraphQLGateway creates a GraphQL-backed gateway. A token is mandatory.
func NewGraphQLGateway(cfg ClientConfig, logger *log.Logger) (*GraphQLGateway, error) {
	if cfg.Token == "" {
		return nil, ErrTokenRequired
	}
	httpClient := newHTTPClient(cfg)
	client := githubv4.NewClient(httpClient)
	if cfg.GraphQLURL != "" {
		client = githubv4.NewEnterpriseClient(cfg.GraphQLURL, httpClient)
	}
	return &GraphQLGateway{
		graphqlClient: client,
		logger:        logger,
	}, nil
}

func (g *GraphQLGateway) FetchAccount(ctx context.Context, username string) (domain.RawAccount, error) {
	g.logger.Printf("[1/3] Fetching account %s via GraphQL...\n", username)
	var q accountQuery
	if err := g.query(ctx, &q, username, "account"); err != nil {
		return domain.RawAccount{}, err
	}
	if q.User.Login == "" {
		return domain.RawAccount{}, domain.NewNotFoundError(username)
	}
	u := q.User
	return domain.RawAccount{
		Name:        u.Name,
		Login:       u.Login,
		AvatarURL:   u.AvatarURL,
		Bio:         u.Bio,
		Location:    u.Location,
		Followers:   u.Followers.TotalCount,
		Following:   u.Following.TotalCount,
		PublicRepos: u.Repositories.TotalCount,
		HTMLURL:     u.URL,
		CreatedAt:   u.CreatedAt.Time,
	}, nil
}

func (g *GraphQLGateway) FetchRepositories(ctx context.Context, username string) ([]domain.RawRepository, error) {
	g.logger.Printf("[2/3] Fetching repositories of %s via GraphQL...\n", username)
	var q repositoriesQuery
	if err := g.query(ctx, &q, username, "repositories"); err != nil {
		return nil, err
	}
	nodes := q.User.Repositories.Nodes
	result := make([]domain.RawRepository, 0, len(nodes))
	for _, node := range nodes {
		topics := make([]string, 0, len(node.RepositoryTopics.Nodes))
		for _, t := range node.RepositoryTopics.Nodes {
			topics = append(topics, t.Topic.Name)
		}
		result = append(result, domain.RawRepository{
			Name:        node.Name,
			Stars:       node.StargazerCount,
			Forks:       node.ForkCount,
			Language:    node.PrimaryLanguage.Name,
			Topics:      topics,
			License:     node.LicenseInfo.Name,
			Description: node.Description,
			HTMLURL:     node.URL,
			UpdatedAt:   node.UpdatedAt.Time,
		})
	}
	g.logger.Printf("Completed fetching %d repositories.\n", len(result))
	return result, nil
}

func (g *GraphQLGateway) FetchOrganizations(ctx context.Context, username string) ([]domain.RawOrganization, error) {
	g.logger.Printf("[3/3] Fetching organizations of %s via GraphQL...\n", username)
	var q organizationsQuery
	if err := g.query(ctx, &q, username, "organizations"); err != nil {
		return nil, err
	}
	result := make([]domain.RawOrganization, 0, len(q.User.Organizations.Nodes))
	for _, node := range q.User.Organizations.Nodes {
		result = append(result, domain.RawOrganization{Login: node.Login, AvatarURL: node.AvatarURL})
	}
	return result, nil
}

func (g *GraphQLGateway) query(ctx context.Context, q any, username, what string) error {
	variables := map[string]interface{}{"login": githubv4.String(username)}
	if err := g.graphqlClient.Query(ctx, q, variables); err != nil {
		if strings.Contains(err.Error(), unresolvedUserMessage) {
			return domain.NewNotFoundError(username)
		}
		wrapped := fmt.Errorf("failed to execute GraphQL query for %s: %w", what, err)
		return domain.NewUpstreamError(err.Error(), wrapped)
	}
	return nil
}
