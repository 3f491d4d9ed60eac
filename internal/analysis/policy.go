// Package analysis derives report metrics from raw GitHub records.
// Every function here is pure: the same inputs and the same "now" give the
// same output.
package analysis

// ScoreWeights are the multipliers of the developer score.
type ScoreWeights struct {
	PerPublicRepo   float64
	PerStar         float64
	PerFollower     float64
	PerFork         float64
	PerOrganization float64
	PerAccountYear  float64
	MaxAccountYears float64
	Cap             float64
}

// ActivityPolicy maps days since the last push to a level and score bonus.
type ActivityPolicy struct {
	HighWithinDays   int
	HighBonus        float64
	MediumWithinDays int
	MediumBonus      float64
	// StaleDays is used as the age of activity when there are no repositories.
	StaleDays int
}

// HealthPolicy grades individual repositories.
type HealthPolicy struct {
	FreshWithinDays int
	GoodThreshold   int
	MaxEntries      int
}

// PersonalityPolicy holds the thresholds of the personality heuristic.
type PersonalityPolicy struct {
	LateNightFraction float64
	EarlyFraction     float64
	RockstarStars     int
	MavenForks        int
}

// ReviewPolicy holds the thresholds of the strengths/weaknesses rules.
type ReviewPolicy struct {
	StrongFollowers        int
	StrongStars            int
	StrongPublicRepos      int
	WeakStars              int
	MinDescribedFraction   float64
	EncouragingRatingAbove float64
	RatingScale            float64
	RatingMax              float64
}

// Limits caps the length of the report lists.
type Limits struct {
	Languages int
	Topics    int
	TopRepos  int
}

// Policy gathers every tunable number of the scoring pipeline.
type Policy struct {
	Score       ScoreWeights
	Activity    ActivityPolicy
	Health      HealthPolicy
	Personality PersonalityPolicy
	Review      ReviewPolicy
	Limits      Limits
}

// DefaultPolicy returns the stock scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		Score: ScoreWeights{
			PerPublicRepo:   2,
			PerStar:         3,
			PerFollower:     2,
			PerFork:         1,
			PerOrganization: 15,
			PerAccountYear:  10,
			MaxAccountYears: 5,
			Cap:             1000,
		},
		Activity: ActivityPolicy{
			HighWithinDays:   7,
			HighBonus:        50,
			MediumWithinDays: 30,
			MediumBonus:      25,
			StaleDays:        999,
		},
		Health: HealthPolicy{
			FreshWithinDays: 30,
			GoodThreshold:   3,
			MaxEntries:      5,
		},
		Personality: PersonalityPolicy{
			LateNightFraction: 0.4,
			EarlyFraction:     0.4,
			RockstarStars:     500,
			MavenForks:        100,
		},
		Review: ReviewPolicy{
			StrongFollowers:        100,
			StrongStars:            50,
			StrongPublicRepos:      30,
			WeakStars:              5,
			MinDescribedFraction:   0.5,
			EncouragingRatingAbove: 8,
			RatingScale:            100,
			RatingMax:              10,
		},
		Limits: Limits{
			Languages: 5,
			Topics:    10,
			TopRepos:  5,
		},
	}
}
