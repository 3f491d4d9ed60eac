package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/devinsight/internal/domain"
)

const day = 24 * time.Hour

// ComputeStats reduces the raw records into the metrics block of a report.
// The personality label is filled in as well. Inputs are never modified.
func ComputeStats(policy Policy, account domain.RawAccount, repos []domain.RawRepository, orgs []domain.RawOrganization, now time.Time) domain.Stats {
	var totalStars, totalForks int
	var lastUpdated time.Time
	for _, repo := range repos {
		totalStars += repo.Stars
		totalForks += repo.Forks
		if repo.UpdatedAt.After(lastUpdated) {
			lastUpdated = repo.UpdatedAt
		}
	}

	diffDays := policy.Activity.StaleDays
	if len(repos) > 0 {
		diffDays = daysBetween(lastUpdated, now)
	}
	level, bonus := activityLevel(policy.Activity, diffDays)

	return domain.Stats{
		TotalStars:     totalStars,
		TotalForks:     totalForks,
		TotalRepos:     account.PublicRepos,
		DeveloperScore: developerScore(policy.Score, account, totalStars, totalForks, len(orgs), bonus, now),
		ActivityLevel:  level,
		Languages:      languageDistribution(repos, policy.Limits.Languages),
		TopTopics:      topTopics(repos, policy.Limits.Topics),
		RepoHealth:     repoHealth(policy.Health, repos, now),
		Personality:    ClassifyPersonality(policy.Personality, repos),
		TopRepos:       topRepos(repos, policy.Limits.TopRepos),
	}
}

// daysBetween returns the whole days elapsed from then to now, floored.
func daysBetween(then, now time.Time) int {
	return int(math.Floor(float64(now.Sub(then)) / float64(day)))
}

func activityLevel(policy ActivityPolicy, diffDays int) (domain.ActivityLevel, float64) {
	switch {
	case diffDays <= policy.HighWithinDays:
		return domain.ActivityHigh, policy.HighBonus
	case diffDays <= policy.MediumWithinDays:
		return domain.ActivityMedium, policy.MediumBonus
	default:
		return domain.ActivityLow, 0
	}
}

func developerScore(w ScoreWeights, account domain.RawAccount, totalStars, totalForks, orgCount int, activityBonus float64, now time.Time) int {
	accountAgeDays := float64(now.Sub(account.CreatedAt)) / float64(day)
	accountYears := math.Min(accountAgeDays/365, w.MaxAccountYears)

	raw := float64(account.PublicRepos)*w.PerPublicRepo +
		float64(totalStars)*w.PerStar +
		float64(account.Followers)*w.PerFollower +
		float64(totalForks)*w.PerFork +
		activityBonus +
		float64(orgCount)*w.PerOrganization +
		accountYears*w.PerAccountYear

	return int(round(math.Min(raw, w.Cap), 0))
}

// languageDistribution counts primary languages. Equal counts keep the order
// in which the languages were first seen.
func languageDistribution(repos []domain.RawRepository, limit int) []domain.LanguageStat {
	counts := make(map[string]int)
	var order []string
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if _, seen := counts[repo.Language]; !seen {
			order = append(order, repo.Language)
		}
		counts[repo.Language]++
	}

	langs := make([]domain.LanguageStat, 0, len(order))
	for _, name := range order {
		langs = append(langs, domain.LanguageStat{
			Name:       name,
			Count:      counts[name],
			Percentage: int(round(float64(counts[name])/float64(len(repos))*100, 0)),
		})
	}
	sort.SliceStable(langs, func(i, j int) bool {
		return langs[i].Count > langs[j].Count
	})
	if len(langs) > limit {
		langs = langs[:limit]
	}
	return langs
}

// topTopics returns distinct topics in order of first appearance.
func topTopics(repos []domain.RawRepository, limit int) []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0, limit)
	for _, repo := range repos {
		for _, topic := range repo.Topics {
			if _, ok := seen[topic]; ok {
				continue
			}
			if len(topics) == limit {
				return topics
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
		}
	}
	return topics
}

// repoHealth grades the first repositories in fetch order; the list is not re-sorted.
func repoHealth(policy HealthPolicy, repos []domain.RawRepository, now time.Time) []domain.RepoHealth {
	n := min(len(repos), policy.MaxEntries)
	health := make([]domain.RepoHealth, 0, n)
	for _, repo := range repos[:n] {
		health = append(health, GradeRepository(policy, repo, now))
	}
	return health
}

// GradeRepository scores one repository on four checks: starred, licensed,
// described and recently updated.
func GradeRepository(policy HealthPolicy, repo domain.RawRepository, now time.Time) domain.RepoHealth {
	score := 0
	if repo.Stars >= 1 {
		score++
	}
	if repo.License != "" {
		score++
	}
	if repo.Description != "" {
		score++
	}
	if daysBetween(repo.UpdatedAt, now) <= policy.FreshWithinDays {
		score++
	}
	status := domain.HealthPoor
	if score >= policy.GoodThreshold {
		status = domain.HealthGood
	}
	return domain.RepoHealth{Name: repo.Name, Score: score, Status: status}
}

// topRepos ranks by stars; ties keep fetch order.
func topRepos(repos []domain.RawRepository, limit int) []domain.TopRepo {
	sorted := make([]domain.RawRepository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	top := make([]domain.TopRepo, 0, len(sorted))
	for _, repo := range sorted {
		top = append(top, domain.TopRepo{
			Name:     repo.Name,
			Stars:    repo.Stars,
			Language: repo.Language,
			URL:      repo.HTMLURL,
		})
	}
	return top
}

// round rounds half away from zero to the given number of decimal places.
func round(x float64, places int) float64 {
	r, err := stats.Round(x, places)
	if err != nil {
		return 0
	}
	return r
}
