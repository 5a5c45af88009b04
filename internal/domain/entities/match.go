package entities

// FactorPolarity is how a rationale factor contributed to the match.
type FactorPolarity string

const (
	PolarityPositive      FactorPolarity = "positive"
	PolarityNeutral       FactorPolarity = "neutral"
	PolaritySlightConcern FactorPolarity = "slight_concern"
)

// MatchFactor is one contributing dimension in a match rationale.
type MatchFactor struct {
	Name        string         `json:"name"`
	Polarity    FactorPolarity `json:"polarity"`
	Explanation string         `json:"explanation"`
}

// MatchRationale explains why a resource scored the way it did.
type MatchRationale struct {
	Summary string        `json:"summary"`
	Factors []MatchFactor `json:"factors"`
}

// MatchedResource is the matching pipeline's output unit: a resource
// paired with its 0-100 compatibility score and rationale. Output
// sequences are ordered by descending score, ties keeping input order.
type MatchedResource struct {
	Resource  *Resource      `json:"resource"`
	Score     int            `json:"score"`
	Rationale MatchRationale `json:"rationale"`
}
