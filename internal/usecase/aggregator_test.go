package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/devinsight/internal/analysis"
	"github.com/naka-gawa/devinsight/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchAccount(ctx context.Context, username string) (domain.RawAccount, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.RawAccount), args.Error(1)
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, username string) ([]domain.RawRepository, error) {
	args := m.Called(ctx, username)
	// We need to handle the case where the returned slice is nil (e.g., when an error occurs).
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRepository), args.Error(1)
}

func (m *mockFetcher) FetchOrganizations(ctx context.Context, username string) ([]domain.RawOrganization, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawOrganization), args.Error(1)
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestAggregator(fetcher *mockFetcher) *Aggregator {
	return NewAggregator(fetcher, log.New(io.Discard, "", 0), WithClock(func() time.Time { return fixedNow }))
}

func TestAggregator_Report(t *testing.T) {
	account := domain.RawAccount{
		Name: "The Octocat", Login: "octocat", Bio: "", PublicRepos: 10, Followers: 5,
		HTMLURL: "https://github.com/octocat", CreatedAt: fixedNow.AddDate(-5, 0, 0),
	}
	repos := []domain.RawRepository{
		{Name: "a", Stars: 15, Forks: 2, Language: "Go", UpdatedAt: fixedNow.AddDate(0, 0, -100)},
		{Name: "b", Stars: 5, Language: "Go", Description: "tool", UpdatedAt: fixedNow.AddDate(0, 0, -200)},
	}

	fetcher := new(mockFetcher)
	fetcher.On("FetchAccount", mock.Anything, "octocat").Return(account, nil)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(repos, nil)
	fetcher.On("FetchOrganizations", mock.Anything, "octocat").Return(nil, nil)

	report, err := newTestAggregator(fetcher).Report(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", report.Profile.Username)
	assert.Equal(t, "The Octocat", report.Profile.Name)
	assert.NotNil(t, report.Profile.Organizations)
	assert.Empty(t, report.Profile.Organizations)

	assert.Equal(t, 142, report.Stats.DeveloperScore)
	assert.Equal(t, domain.ActivityLow, report.Stats.ActivityLevel)
	assert.Equal(t, analysis.PersonalitySoloArchitect, report.Stats.Personality)
	assert.Equal(t, []domain.LanguageStat{{Name: "Go", Count: 2, Percentage: 100}}, report.Stats.Languages)

	assert.InDelta(t, 2.4, report.AIReview.Rating, 1e-9)
	assert.Contains(t, report.AIReview.Weaknesses, analysis.WeaknessBio)
	assert.Equal(t,
		"A Solo Architect specialized in Go with a portfolio of 10 projects and over 20 stars collected.",
		report.ResumeInsight)

	fetcher.AssertExpectations(t)
}

func TestAggregator_ReportErrors(t *testing.T) {
	testCases := []struct {
		name           string
		accountErr     error
		repoErr        error
		orgErr         error
		expectNotFound bool
	}{
		{
			name:           "unknown account is not found",
			accountErr:     domain.NewNotFoundError("ghost"),
			expectNotFound: true,
		},
		{
			name:           "not found wins over sibling failures",
			accountErr:     domain.NewNotFoundError("ghost"),
			repoErr:        domain.NewUpstreamError("Bad Gateway", nil),
			expectNotFound: true,
		},
		{
			name:    "repository failure aborts the report",
			repoErr: domain.NewUpstreamError("Bad Gateway", nil),
		},
		{
			name:   "untyped errors become upstream errors",
			orgErr: errors.New("connection reset"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			fetcher.On("FetchAccount", mock.Anything, "ghost").Return(domain.RawAccount{}, tc.accountErr)
			fetcher.On("FetchRepositories", mock.Anything, "ghost").Return([]domain.RawRepository{}, tc.repoErr)
			fetcher.On("FetchOrganizations", mock.Anything, "ghost").Return([]domain.RawOrganization{}, tc.orgErr)

			report, err := newTestAggregator(fetcher).Report(context.Background(), "ghost")

			require.Error(t, err)
			assert.Nil(t, report)
			assert.Equal(t, tc.expectNotFound, domain.IsNotFound(err))
			var derr *domain.Error
			require.ErrorAs(t, err, &derr)
			if tc.expectNotFound {
				assert.Equal(t, domain.CodeNotFound, derr.Code)
			} else {
				assert.Equal(t, domain.CodeUpstream, derr.Code)
			}
		})
	}
}

func TestAggregator_ReportRejectsBlankUsername(t *testing.T) {
	for _, username := range []string{"", "   "} {
		fetcher := new(mockFetcher)

		report, err := newTestAggregator(fetcher).Report(context.Background(), username)

		require.ErrorIs(t, err, ErrUsernameRequired)
		assert.Nil(t, report)
		fetcher.AssertNotCalled(t, "FetchAccount", mock.Anything, mock.Anything)
		fetcher.AssertNotCalled(t, "FetchRepositories", mock.Anything, mock.Anything)
		fetcher.AssertNotCalled(t, "FetchOrganizations", mock.Anything, mock.Anything)
	}
}

func TestResumeInsight(t *testing.T) {
	testCases := []struct {
		name     string
		stats    domain.Stats
		expected string
	}{
		{
			name: "uses the top language",
			stats: domain.Stats{
				Personality: analysis.PersonalityNightOwl, TotalStars: 42,
				Languages: []domain.LanguageStat{{Name: "Rust"}, {Name: "Go"}},
			},
			expected: "A Night Owl Coder specialized in Rust with a portfolio of 7 projects and over 42 stars collected.",
		},
		{
			name:     "falls back without languages",
			stats:    domain.Stats{Personality: analysis.PersonalitySoloArchitect},
			expected: "A Solo Architect specialized in various technologies with a portfolio of 7 projects and over 0 stars collected.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResumeInsight(domain.RawAccount{PublicRepos: 7}, tc.stats))
		})
	}
}
