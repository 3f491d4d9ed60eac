package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/devinsight/internal/domain"
)

func reposAtHours(hours ...int) []domain.RawRepository {
	repos := make([]domain.RawRepository, 0, len(hours))
	for _, h := range hours {
		repos = append(repos, domain.RawRepository{UpdatedAt: time.Date(2024, 4, 1, h, 30, 0, 0, time.UTC)})
	}
	return repos
}

func TestClassifyPersonality(t *testing.T) {
	policy := DefaultPolicy().Personality

	testCases := []struct {
		name     string
		repos    func() []domain.RawRepository
		expected string
	}{
		{
			name: "ten repos at 23h are night owl regardless of stars",
			repos: func() []domain.RawRepository {
				repos := reposAtHours(23, 23, 23, 23, 23, 23, 23, 23, 23, 23)
				repos[0].Stars = 10000
				repos[1].Forks = 5000
				return repos
			},
			expected: PersonalityNightOwl,
		},
		{
			name:     "after midnight counts as late night",
			repos:    func() []domain.RawRepository { return reposAtHours(0, 4, 12) },
			expected: PersonalityNightOwl,
		},
		{
			name:     "exactly forty percent late is not enough",
			repos:    func() []domain.RawRepository { return reposAtHours(22, 3, 12, 13, 14) },
			expected: PersonalitySoloArchitect,
		},
		{
			name:     "mornings make an early bird",
			repos:    func() []domain.RawRepository { return reposAtHours(5, 9, 7, 15) },
			expected: PersonalityEarlyBird,
		},
		{
			name:     "ten o'clock is not early",
			repos:    func() []domain.RawRepository { return reposAtHours(10, 10, 10) },
			expected: PersonalitySoloArchitect,
		},
		{
			name: "many stars make a rockstar",
			repos: func() []domain.RawRepository {
				repos := reposAtHours(12, 14)
				repos[0].Stars = 400
				repos[1].Stars = 101
				return repos
			},
			expected: PersonalityRockstar,
		},
		{
			name: "many forks make a collaboration maven",
			repos: func() []domain.RawRepository {
				repos := reposAtHours(12, 14)
				repos[0].Forks = 101
				return repos
			},
			expected: PersonalityMaven,
		},
		{
			name:     "no repositories falls through to solo architect",
			repos:    func() []domain.RawRepository { return nil },
			expected: PersonalitySoloArchitect,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyPersonality(policy, tc.repos()))
		})
	}
}

func TestClassifyPersonality_UsesUTCHour(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 08:00 in Tokyo is 23:00 UTC the previous day.
	repos := []domain.RawRepository{{UpdatedAt: time.Date(2024, 4, 2, 8, 0, 0, 0, tokyo)}}

	assert.Equal(t, PersonalityNightOwl, ClassifyPersonality(DefaultPolicy().Personality, repos))
}
