package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ivr/ivr/internal/domain/canonical"
)

// Engine produces ranked mapping suggestions for a partner form
// label. It is stateless apart from the history repository and safe
// for concurrent use.
type Engine struct {
	history HistoryRepository
	weights Weights
	logger  zerolog.Logger
}

func NewEngine(history HistoryRepository, logger zerolog.Logger) *Engine {
	return &Engine{
		history: history,
		weights: DefaultWeights(),
		logger:  logger.With().Str("component", "suggest").Logger(),
	}
}

// WithWeights overrides the default constants, for tuning.
func (e *Engine) WithWeights(w Weights) *Engine {
	e.weights = w
	return e
}

// Suggest combines pattern, similarity, and historical signals for a
// single label, deduplicates by canonical field keeping the highest
// confidence, and returns at most MaxSuggestions sorted descending.
func (e *Engine) Suggest(ctx context.Context, label string, candidates []canonical.Field) []Suggestion {
	var all []Suggestion

	if s, ok := matchPattern(label); ok {
		s.PartnerField = fieldNameFromLabel(label)
		all = append(all, s)
	}

	for _, c := range candidates {
		score := similarity(label, c.Label, e.weights)
		if score < e.weights.SimilarityFloor {
			continue
		}
		all = append(all, Suggestion{
			PartnerField:   fieldNameFromLabel(label),
			Label:          label,
			CanonicalField: c.ID,
			Confidence:     score,
			Method:         MethodSimilarity,
			Reason:         fmt.Sprintf("label resembles %q", c.Label),
		})
	}

	all = append(all, e.historical(ctx, label)...)

	best := make(map[string]Suggestion, len(all))
	order := make([]string, 0, len(all))
	for _, s := range all {
		prev, seen := best[s.CanonicalField]
		if !seen {
			order = append(order, s.CanonicalField)
		}
		if !seen || s.Confidence > prev.Confidence {
			best[s.CanonicalField] = s
		}
	}
	out := make([]Suggestion, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	if len(out) > e.weights.MaxSuggestions {
		out = out[:e.weights.MaxSuggestions]
	}
	return out
}

// historical proposes the most frequently confirmed targets among
// past mappings whose partner field name overlaps the label.
func (e *Engine) historical(ctx context.Context, label string) []Suggestion {
	entries, err := e.history.FindByLabel(ctx, label, e.weights.HistoricalFloor)
	if err != nil {
		e.logger.Warn().Err(err).Str("label", label).Msg("history lookup failed")
		return nil
	}
	type tally struct {
		count int
		top   float64
	}
	byField := make(map[string]*tally)
	order := make([]string, 0, len(entries))
	for _, en := range entries {
		t, ok := byField[en.CanonicalField]
		if !ok {
			t = &tally{}
			byField[en.CanonicalField] = t
			order = append(order, en.CanonicalField)
		}
		t.count++
		if en.Confidence > t.top {
			t.top = en.Confidence
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return byField[order[i]].count > byField[order[j]].count
	})
	if len(order) > e.weights.HistoricalLimit {
		order = order[:e.weights.HistoricalLimit]
	}
	out := make([]Suggestion, 0, len(order))
	for _, id := range order {
		t := byField[id]
		score := t.top * e.weights.HistoricalDiscount
		if score > e.weights.HistoricalCap {
			score = e.weights.HistoricalCap
		}
		out = append(out, Suggestion{
			PartnerField:   fieldNameFromLabel(label),
			Label:          label,
			CanonicalField: id,
			Confidence:     score / 100,
			Method:         MethodHistorical,
			Reason:         fmt.Sprintf("confirmed %d time(s) for similar labels", t.count),
		})
	}
	return out
}

// Rank orders suggestions for human review. Each confidence is scaled
// by a per-method weight and boosted when the target canonical field
// is required. Confidence values themselves are left untouched.
func (e *Engine) Rank(suggestions []Suggestion) []Suggestion {
	out := make([]Suggestion, len(suggestions))
	copy(out, suggestions)
	score := func(s Suggestion) float64 {
		v := s.Confidence
		switch s.Method {
		case MethodPattern:
			v *= e.weights.PatternWeight
		case MethodHistorical:
			v *= e.weights.HistoricalWeight
		default:
			v *= e.weights.SimilarityWeight
		}
		if canonical.IsRequired(s.CanonicalField) {
			v *= e.weights.RequiredBoost
		}
		return v
	}
	sort.SliceStable(out, func(i, j int) bool { return score(out[i]) > score(out[j]) })
	return out
}

// ExplainConfidence maps a 0-100 score to a reviewer-facing band.
func ExplainConfidence(score float64) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "good"
	case score >= 70:
		return "fair"
	case score >= 60:
		return "possible"
	default:
		return "weak"
	}
}

// fieldNameFromLabel derives a stable partner field key from a raw
// label, matching how extracted form fields are keyed.
func fieldNameFromLabel(label string) string {
	s := labelSeparators.ReplaceAllString(strings.ToLower(label), "_")
	return strings.Trim(s, "_")
}
