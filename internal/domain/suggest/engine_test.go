package suggest

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ivr/ivr/internal/domain/canonical"
)

func newTestEngine(history HistoryRepository) *Engine {
	if history == nil {
		history = NewMemoryHistory()
	}
	return NewEngine(history, zerolog.Nop())
}

func TestSuggestPatternMatch(t *testing.T) {
	e := newTestEngine(nil)
	got := e.Suggest(context.Background(), "Patient DOB", canonical.All())
	if len(got) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	top := got[0]
	if top.CanonicalField != "patient_dob" {
		t.Fatalf("top suggestion = %s, want patient_dob", top.CanonicalField)
	}
	if top.Method != MethodPattern {
		t.Errorf("method = %s, want pattern", top.Method)
	}
	if top.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", top.Confidence)
	}
	if top.PartnerField != "patient_dob" {
		t.Errorf("partner field = %s, want patient_dob", top.PartnerField)
	}
}

func TestSuggestIndexedPattern(t *testing.T) {
	e := newTestEngine(nil)
	got := e.Suggest(context.Background(), "Physician NPI 3", nil)
	if len(got) == 0 {
		t.Fatal("expected a suggestion")
	}
	if got[0].CanonicalField != "provider_npi_3" {
		t.Errorf("canonical field = %s, want provider_npi_3", got[0].CanonicalField)
	}
	if got[0].Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", got[0].Confidence)
	}
}

func TestSuggestSimilarityFloor(t *testing.T) {
	e := newTestEngine(nil)
	candidates := []canonical.Field{
		{ID: "patient_dob", Label: "Patient Date of Birth", Type: canonical.TypeDate},
		{ID: "facility_fax", Label: "Facility Fax", Type: canonical.TypePhone},
	}
	got := e.Suggest(context.Background(), "Pt Date of Birth", candidates)
	for _, s := range got {
		if s.CanonicalField == "facility_fax" {
			t.Errorf("unrelated candidate survived the similarity floor: %+v", s)
		}
		if s.CanonicalField == "patient_dob" && s.Confidence < e.weights.SimilarityFloor {
			t.Errorf("kept suggestion below floor: %v", s.Confidence)
		}
	}
}

func TestSuggestDedupKeepsHighestConfidence(t *testing.T) {
	// patient_dob must appear exactly once even when more than one
	// signal proposes it.
	e := newTestEngine(nil)
	got := e.Suggest(context.Background(), "Patient DOB", canonical.All())
	seen := 0
	for _, s := range got {
		if s.CanonicalField == "patient_dob" {
			seen++
			if s.Method != MethodPattern {
				t.Errorf("dedup kept %s occurrence, want pattern", s.Method)
			}
		}
	}
	if seen != 1 {
		t.Errorf("patient_dob appeared %d times, want 1", seen)
	}
}

func TestSuggestCapsResultCount(t *testing.T) {
	hist := NewMemoryHistory()
	ctx := context.Background()
	hist.RecordConfirmation(ctx, "acme", "patient dob", "patient_name", 85)
	hist.RecordConfirmation(ctx, "acme", "patient dob", "todays_date", 80)
	hist.RecordConfirmation(ctx, "acme", "patient dob", "signature_date", 75)

	w := DefaultWeights()
	w.MaxSuggestions = 2
	e := newTestEngine(hist).WithWeights(w)

	got := e.Suggest(ctx, "Patient DOB", canonical.All())
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, cap is 2", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("suggestions not sorted descending at %d", i)
		}
	}
	// The pattern match is the strongest signal and must survive the cap.
	if got[0].CanonicalField != "patient_dob" {
		t.Errorf("top after cap = %s, want patient_dob", got[0].CanonicalField)
	}
}

func TestHistoricalSignal(t *testing.T) {
	hist := NewMemoryHistory()
	ctx := context.Background()
	// Three manufacturers confirmed "Insurance Carrier" to the same
	// target; one confirmation is below the floor and must not count.
	hist.RecordConfirmation(ctx, "acme", "insurance_carrier", "primary_insurance_name", 95)
	hist.RecordConfirmation(ctx, "medline", "insurance_carrier_name", "primary_insurance_name", 88)
	hist.RecordConfirmation(ctx, "zenith", "insurance_carrier", "secondary_insurance_name", 60)

	e := newTestEngine(hist)
	got := e.Suggest(ctx, "insurance_carrier", nil)

	var found *Suggestion
	for i := range got {
		if got[i].CanonicalField == "primary_insurance_name" {
			found = &got[i]
		}
		if got[i].CanonicalField == "secondary_insurance_name" {
			t.Errorf("confirmation below floor produced a suggestion")
		}
	}
	if found == nil {
		t.Fatal("expected a historical suggestion for primary_insurance_name")
	}
	if found.Method != MethodHistorical {
		t.Errorf("method = %s, want historical", found.Method)
	}
	// 95 discounted by 0.8 is 76, under the cap.
	if math.Abs(found.Confidence-0.76) > 1e-9 {
		t.Errorf("confidence = %v, want 0.76", found.Confidence)
	}
}

func TestHistoricalMatchesOwnConfirmations(t *testing.T) {
	hist := NewMemoryHistory()
	ctx := context.Background()
	e := newTestEngine(hist)

	// Confirm a suggestion under its own derived partner field key,
	// the way the confirm flow stores it, then scan the raw label
	// again. The confirmation must surface as a historical signal.
	first := e.Suggest(ctx, "Member ID", nil)
	if len(first) == 0 {
		t.Fatal("expected a pattern suggestion for Member ID")
	}
	hist.RecordConfirmation(ctx, "acme", first[0].PartnerField, "secondary_policy_number", 85)

	got := e.Suggest(ctx, "Member ID", nil)
	var found *Suggestion
	for i := range got {
		if got[i].CanonicalField == "secondary_policy_number" {
			found = &got[i]
		}
	}
	if found == nil {
		t.Fatalf("recorded confirmation for %q not found when scanning the label again", first[0].PartnerField)
	}
	if found.Method != MethodHistorical {
		t.Errorf("method = %s, want historical", found.Method)
	}
}

func TestHistoricalCap(t *testing.T) {
	hist := NewMemoryHistory()
	ctx := context.Background()
	hist.RecordConfirmation(ctx, "acme", "order_number", "order_number", 120)

	e := newTestEngine(hist)
	got := e.Suggest(ctx, "order_number", nil)
	for _, s := range got {
		if s.Method == MethodHistorical && s.Confidence > 0.90 {
			t.Errorf("historical confidence %v exceeds cap", s.Confidence)
		}
	}
}

func TestHistoricalLimit(t *testing.T) {
	hist := NewMemoryHistory()
	ctx := context.Background()
	targets := []string{"patient_name", "provider_name", "facility_name", "product_name", "sales_rep_name"}
	for _, target := range targets {
		hist.RecordConfirmation(ctx, "acme", "name", target, 90)
	}

	e := newTestEngine(hist)
	got := e.historical(ctx, "name")
	if len(got) != e.weights.HistoricalLimit {
		t.Errorf("got %d historical suggestions, want %d", len(got), e.weights.HistoricalLimit)
	}
}

func TestRankPrefersPatternAndRequired(t *testing.T) {
	e := newTestEngine(nil)
	in := []Suggestion{
		{CanonicalField: "facility_fax", Confidence: 0.80, Method: MethodSimilarity},
		{CanonicalField: "patient_dob", Confidence: 0.75, Method: MethodPattern},
	}
	got := e.Rank(in)
	// 0.75 x 1.2 pattern x 1.1 required beats 0.80 x 1.0.
	if got[0].CanonicalField != "patient_dob" {
		t.Errorf("rank order = %s first, want patient_dob", got[0].CanonicalField)
	}
	// Ranking must not mutate the input order.
	if in[0].CanonicalField != "facility_fax" {
		t.Error("Rank mutated its input")
	}
}

func TestRankIsStableForTies(t *testing.T) {
	e := newTestEngine(nil)
	in := []Suggestion{
		{CanonicalField: "wound_location", Confidence: 0.7, Method: MethodSimilarity},
		{CanonicalField: "wound_duration", Confidence: 0.7, Method: MethodSimilarity},
	}
	got := e.Rank(in)
	if got[0].CanonicalField != "wound_location" || got[1].CanonicalField != "wound_duration" {
		t.Errorf("tie order changed: %s, %s", got[0].CanonicalField, got[1].CanonicalField)
	}
}

func TestExplainConfidence(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "excellent"},
		{90, "excellent"},
		{85, "good"},
		{72, "fair"},
		{60, "possible"},
		{40, "weak"},
	}
	for _, tt := range tests {
		if got := ExplainConfidence(tt.score); got != tt.want {
			t.Errorf("ExplainConfidence(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
