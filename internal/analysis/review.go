package analysis

import (
	"math"
	"strings"

	"github.com/naka-gawa/devinsight/internal/domain"
)

// Review sentences.
const (
	StrengthFollowers   = "Strong community presence with a large follower base."
	StrengthStars       = "Projects attract significant community interest and stars."
	StrengthActivity    = "Consistently active with recent contributions."
	StrengthPortfolio   = "Extensive portfolio covering many public projects."
	WeaknessBio         = "Profile bio is missing; add a short summary of your focus."
	WeaknessStars       = "Few stars so far; share and promote your best projects."
	WeaknessActivity    = "Low recent activity; regular contributions keep a profile fresh."
	WeaknessDescription = "Many repositories lack a description."

	SuggestionEncouraging = "Outstanding profile. Keep mentoring others and maintaining your flagship projects."
	SuggestionImprove     = "Polish your top repositories with clear READMEs, licenses and descriptions to stand out."
)

// Review produces the rule-based strengths/weaknesses review.
// Every rule is evaluated independently.
func Review(policy ReviewPolicy, account domain.RawAccount, s domain.Stats, repos []domain.RawRepository) domain.AIReview {
	strengths := []string{}
	weaknesses := []string{}

	if account.Followers > policy.StrongFollowers {
		strengths = append(strengths, StrengthFollowers)
	}
	if s.TotalStars > policy.StrongStars {
		strengths = append(strengths, StrengthStars)
	}
	if s.ActivityLevel == domain.ActivityHigh {
		strengths = append(strengths, StrengthActivity)
	}
	if account.PublicRepos > policy.StrongPublicRepos {
		strengths = append(strengths, StrengthPortfolio)
	}

	if strings.TrimSpace(account.Bio) == "" {
		weaknesses = append(weaknesses, WeaknessBio)
	}
	if s.TotalStars < policy.WeakStars {
		weaknesses = append(weaknesses, WeaknessStars)
	}
	if s.ActivityLevel == domain.ActivityLow {
		weaknesses = append(weaknesses, WeaknessActivity)
	}
	// With no repositories there is nothing to describe.
	if len(repos) > 0 && describedFraction(repos) < policy.MinDescribedFraction {
		weaknesses = append(weaknesses, WeaknessDescription)
	}

	// The suggestion follows the unrounded score; only the reported rating is rounded.
	score := math.Min(policy.RatingMax, float64(s.DeveloperScore)/policy.RatingScale+1)
	suggestion := SuggestionImprove
	if score > policy.EncouragingRatingAbove {
		suggestion = SuggestionEncouraging
	}

	return domain.AIReview{
		Rating:     round(score, 1),
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Suggestion: suggestion,
	}
}

func describedFraction(repos []domain.RawRepository) float64 {
	described := 0
	for _, repo := range repos {
		if repo.Description != "" {
			described++
		}
	}
	return float64(described) / float64(len(repos))
}
