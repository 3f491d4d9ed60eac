package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/devinsight/internal/cache"
	"github.com/naka-gawa/devinsight/internal/config"
	"github.com/naka-gawa/devinsight/internal/gateway"
	"github.com/naka-gawa/devinsight/internal/usecase"
)

// loadConfig reads the environment and applies the --api flag on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("api") {
		api, _ := cmd.Flags().GetString("api")
		if err := config.ValidateAPI(api); err != nil {
			return nil, err
		}
		cfg.GitHub.API = api
	}
	return cfg, nil
}

// newAggregator injects the dependencies of the report pipeline.
func newAggregator(cfg *config.Config, logger *log.Logger) (*usecase.Aggregator, error) {
	clientCfg := gateway.ClientConfig{
		Token:      cfg.GitHub.Token,
		BaseURL:    cfg.GitHub.BaseURL,
		GraphQLURL: cfg.GitHub.GraphQLURL,
		Timeout:    cfg.GitHub.Timeout,
	}
	if clientCfg.Token == "" {
		logger.Println("warning: GITHUB_TOKEN not set, using unauthenticated GitHub API (rate limited)")
	}

	var upstream gateway.Fetcher
	switch cfg.GitHub.API {
	case config.APIGraphQL:
		gql, err := gateway.NewGraphQLGateway(clientCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub GraphQL gateway: %w", err)
		}
		upstream = gql
	default:
		rest, err := gateway.NewGitHubGateway(clientCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		upstream = rest
	}

	c := cache.New(cache.WithTTL(cfg.Cache.TTL), cache.WithMaxEntries(cfg.Cache.MaxEntries))
	return usecase.NewAggregator(gateway.NewCachedFetcher(upstream, c, logger), logger), nil
}
