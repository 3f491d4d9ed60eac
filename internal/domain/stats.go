// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// ActivityLevel classifies how recently a developer pushed to any repository.
type ActivityLevel string

const (
	ActivityHigh   ActivityLevel = "High"
	ActivityMedium ActivityLevel = "Medium"
	ActivityLow    ActivityLevel = "Low"
)

// HealthStatus is the grade given to a single repository.
type HealthStatus string

const (
	HealthGood HealthStatus = "Good"
	HealthPoor HealthStatus = "Poor"
)

// RawAccount is the decoded user record returned by the hosting platform.
// Optional text fields are empty strings when the platform omits them.
type RawAccount struct {
	Name        string
	Login       string
	AvatarURL   string
	Bio         string
	Location    string
	Followers   int
	Following   int
	PublicRepos int
	HTMLURL     string
	CreatedAt   time.Time
}

// RawRepository is the decoded repository record.
// Language, License and Description are empty when absent; Topics is never nil.
type RawRepository struct {
	Name        string
	Stars       int
	Forks       int
	Language    string
	Topics      []string
	License     string
	Description string
	HTMLURL     string
	UpdatedAt   time.Time
}

// RawOrganization is the decoded organization membership record.
type RawOrganization struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

// LanguageStat is one entry of the language distribution.
type LanguageStat struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// RepoHealth holds the health grade of a single repository.
type RepoHealth struct {
	Name   string       `json:"name"`
	Score  int          `json:"score"`
	Status HealthStatus `json:"status"`
}

// TopRepo is a repository ranked by star count.
type TopRepo struct {
	Name     string `json:"name"`
	Stars    int    `json:"stars"`
	Language string `json:"language"`
	URL      string `json:"url"`
}

// Stats is the derived metrics block of a report.
// It is the core domain entity of this application.
type Stats struct {
	TotalStars     int            `json:"totalStars"`
	TotalForks     int            `json:"totalForks"`
	TotalRepos     int            `json:"totalRepos"`
	DeveloperScore int            `json:"developerScore"`
	ActivityLevel  ActivityLevel  `json:"activityLevel"`
	Languages      []LanguageStat `json:"languages"`
	TopTopics      []string       `json:"topTopics"`
	RepoHealth     []RepoHealth   `json:"repoHealth"`
	Personality    string         `json:"personality"`
	TopRepos       []TopRepo      `json:"topRepos"`
}

// AIReview is the rule-based review of a developer profile.
type AIReview struct {
	Rating     float64  `json:"rating"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Suggestion string   `json:"suggestion"`
}

// Profile is the projection of RawAccount exposed in a report.
type Profile struct {
	Name          string            `json:"name"`
	Username      string            `json:"username"`
	AvatarURL     string            `json:"avatarUrl"`
	Bio           string            `json:"bio"`
	Location      string            `json:"location"`
	Followers     int               `json:"followers"`
	Following     int               `json:"following"`
	PublicRepos   int               `json:"publicRepos"`
	HTMLURL       string            `json:"htmlUrl"`
	CreatedAt     time.Time         `json:"createdAt"`
	Organizations []RawOrganization `json:"organizations"`
}

// Report is the full analytics result for one identity.
type Report struct {
	Profile       Profile  `json:"profile"`
	Stats         Stats    `json:"stats"`
	AIReview      AIReview `json:"aiReview"`
	ResumeInsight string   `json:"resumeInsight"`
}
