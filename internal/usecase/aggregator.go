// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/naka-gawa/devinsight/internal/analysis"
	"github.com/naka-gawa/devinsight/internal/domain"
	"github.com/naka-gawa/devinsight/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// ErrUsernameRequired is returned before any upstream call when the username is blank.
// Go-github would otherwise resolve an empty login to the authenticated user.
var ErrUsernameRequired = errors.New("username is required")

// Aggregator is the use case for building developer reports.
// It orchestrates the fetching of raw data and the derivation of metrics.
type Aggregator struct {
	fetcher gateway.Fetcher
	policy  analysis.Policy
	logger  *log.Logger
	now     func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithPolicy replaces the default scoring policy.
func WithPolicy(p analysis.Policy) Option {
	return func(a *Aggregator) {
		a.policy = p
	}
}

// WithClock replaces the time source used for recency and account age.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		policy:  analysis.DefaultPolicy(),
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Report fetches the account, repositories and organizations of username
// concurrently and derives the full report from them.
// Any fetch failure aborts the whole pipeline; no partial report is returned.
func (a *Aggregator) Report(ctx context.Context, username string) (*domain.Report, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	a.logger.Printf("Usecase: Building report for %s...\n", username)

	var (
		account    domain.RawAccount
		repos      []domain.RawRepository
		orgs       []domain.RawOrganization
		accountErr error
	)

	// Use an errgroup to fetch all data concurrently.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		account, accountErr = a.fetcher.FetchAccount(egCtx, username)
		return accountErr
	})

	eg.Go(func() error {
		var err error
		repos, err = a.fetcher.FetchRepositories(egCtx, username)
		return err
	})

	eg.Go(func() error {
		var err error
		orgs, err = a.fetcher.FetchOrganizations(egCtx, username)
		return err
	})

	if err := eg.Wait(); err != nil {
		// An unknown account outranks whatever the sibling requests reported.
		if domain.IsNotFound(accountErr) {
			err = accountErr
		}
		a.logger.Printf("Usecase: Fetch failed: %v\n", err)
		return nil, classify(err)
	}
	a.logger.Println("Usecase: All data fetched successfully.")

	now := a.now()
	stats := analysis.ComputeStats(a.policy, account, repos, orgs, now)
	review := analysis.Review(a.policy.Review, account, stats, repos)

	report := &domain.Report{
		Profile:       profileOf(account, orgs),
		Stats:         stats,
		AIReview:      review,
		ResumeInsight: ResumeInsight(account, stats),
	}
	a.logger.Println("Usecase: Report complete.")
	return report, nil
}

func profileOf(account domain.RawAccount, orgs []domain.RawOrganization) domain.Profile {
	organizations := make([]domain.RawOrganization, len(orgs))
	copy(organizations, orgs)
	return domain.Profile{
		Name:          account.Name,
		Username:      account.Login,
		AvatarURL:     account.AvatarURL,
		Bio:           account.Bio,
		Location:      account.Location,
		Followers:     account.Followers,
		Following:     account.Following,
		PublicRepos:   account.PublicRepos,
		HTMLURL:       account.HTMLURL,
		CreatedAt:     account.CreatedAt,
		Organizations: organizations,
	}
}

// classify makes sure every failure belongs to one of the two error classes.
func classify(err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}
	return domain.NewUpstreamError("", err)
}
