package analysis

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/devinsight/internal/domain"
)

// Personality labels, checked in this order.
const (
	PersonalityNightOwl      = "Night Owl Coder"
	PersonalityEarlyBird     = "Early Bird Builder"
	PersonalityRockstar      = "Open Source Rockstar"
	PersonalityMaven         = "Collaboration Maven"
	PersonalitySoloArchitect = "Solo Architect"
)

// ClassifyPersonality labels a developer from the hour of day (UTC) at which
// their repositories were last updated, then from aggregate stars and forks.
func ClassifyPersonality(policy PersonalityPolicy, repos []domain.RawRepository) string {
	lateNight := make(stats.Float64Data, 0, len(repos))
	early := make(stats.Float64Data, 0, len(repos))
	var totalStars, totalForks int
	for _, repo := range repos {
		hour := repo.UpdatedAt.UTC().Hour()
		lateNight = append(lateNight, indicator(hour >= 22 || hour < 5))
		early = append(early, indicator(hour >= 5 && hour < 10))
		totalStars += repo.Stars
		totalForks += repo.Forks
	}

	switch {
	case fraction(lateNight) > policy.LateNightFraction:
		return PersonalityNightOwl
	case fraction(early) > policy.EarlyFraction:
		return PersonalityEarlyBird
	case totalStars > policy.RockstarStars:
		return PersonalityRockstar
	case totalForks > policy.MavenForks:
		return PersonalityMaven
	default:
		return PersonalitySoloArchitect
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// fraction is the mean of 0/1 indicators; empty input counts as 0.
func fraction(data stats.Float64Data) float64 {
	mean, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return mean
}
