// Package suggest proposes canonical field mappings for newly
// discovered partner form labels, combining pattern rules, string
// similarity, and historical confirmation frequency. It runs at
// onboarding time; suggestions become schema rows only after a human
// confirms them.
package suggest

// Method identifies which signal produced a suggestion.
type Method string

const (
	MethodPattern    Method = "pattern"
	MethodSimilarity Method = "similarity"
	MethodHistorical Method = "historical"
)

// Suggestion is one proposed mapping. Confidence is in [0,1].
// Suggestions are transient and never persisted directly.
type Suggestion struct {
	PartnerField   string  `json:"partner_field"`
	Label          string  `json:"label"`
	CanonicalField string  `json:"canonical_field"`
	Confidence     float64 `json:"confidence"`
	Method         Method  `json:"method"`
	Reason         string  `json:"reason,omitempty"`
}

// Weights carries the tunable constants of the engine. The values in
// DefaultWeights are empirical; they are configuration rather than
// hard-coded so deployments can adjust them.
type Weights struct {
	// Similarity blend. The three must sum to 1.
	Levenshtein  float64
	TokenOverlap float64
	PrefixRatio  float64

	// SimilarityFloor drops similarity candidates scoring below it.
	SimilarityFloor float64

	// PatternConfidence is assigned to pattern rule matches that do
	// not carry their own confidence.
	PatternConfidence float64

	// Historical signal: only confirmations recorded at or above
	// HistoricalFloor (0-100 scale) count; matches are discounted and
	// capped, and at most HistoricalLimit targets are proposed.
	HistoricalFloor    float64
	HistoricalDiscount float64
	HistoricalCap      float64
	HistoricalLimit    int

	// Ranking multipliers, presentation only.
	PatternWeight    float64
	HistoricalWeight float64
	SimilarityWeight float64
	RequiredBoost    float64

	// MaxSuggestions caps the deduplicated result list.
	MaxSuggestions int
}

// DefaultWeights returns the production constants.
func DefaultWeights() Weights {
	return Weights{
		Levenshtein:        0.4,
		TokenOverlap:       0.4,
		PrefixRatio:        0.2,
		SimilarityFloor:    0.5,
		PatternConfidence:  0.95,
		HistoricalFloor:    70,
		HistoricalDiscount: 0.8,
		HistoricalCap:      90,
		HistoricalLimit:    3,
		PatternWeight:      1.2,
		HistoricalWeight:   1.1,
		SimilarityWeight:   1.0,
		RequiredBoost:      1.1,
		MaxSuggestions:     5,
	}
}
