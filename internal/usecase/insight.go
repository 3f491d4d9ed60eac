package usecase

import (
	"fmt"

	"github.com/naka-gawa/devinsight/internal/domain"
)

const fallbackSpecialty = "various technologies"

// ResumeInsight renders the one-sentence narrative of a report.
func ResumeInsight(account domain.RawAccount, stats domain.Stats) string {
	specialty := fallbackSpecialty
	if len(stats.Languages) > 0 {
		specialty = stats.Languages[0].Name
	}
	return fmt.Sprintf("A %s specialized in %s with a portfolio of %d projects and over %d stars collected.",
		stats.Personality, specialty, account.PublicRepos, stats.TotalStars)
}
