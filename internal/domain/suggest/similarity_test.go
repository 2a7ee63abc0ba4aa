package suggest

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Patient DOB", "patient dob"},
		{"Pt. D.O.B.", "pt d o b"},
		{"  Provider   Name  ", "provider name"},
		{"Physician NPI 3", "physician npi"},
		{"Please Enter Patient Name", "patient name"},
		{"Wound-Size (Total)", "wound size total"},
	}
	for _, tt := range tests {
		if got := normalizeLabel(tt.in); got != tt.want {
			t.Errorf("normalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"patient", "patient", 0},
		{"dob", "dbo", 2},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenOverlap(t *testing.T) {
	if got := tokenOverlap("patient date of birth", "date of birth"); got != 0.75 {
		t.Errorf("tokenOverlap = %v, want 0.75", got)
	}
	if got := tokenOverlap("alpha", "beta"); got != 0 {
		t.Errorf("disjoint tokens overlap = %v, want 0", got)
	}
	if got := tokenOverlap("same", "same"); got != 1 {
		t.Errorf("identical tokens overlap = %v, want 1", got)
	}
}

func TestSimilarityIdentical(t *testing.T) {
	w := DefaultWeights()
	if got := similarity("Patient Name", "patient name", w); got != 1 {
		t.Errorf("similarity of equal normalized labels = %v, want 1", got)
	}
}

func TestSimilarityOrdering(t *testing.T) {
	w := DefaultWeights()
	exact := similarity("Patient Date of Birth", "Patient Date of Birth", w)
	near := similarity("Pt Date of Birth", "Patient Date of Birth", w)
	far := similarity("Facility Fax", "Patient Date of Birth", w)
	if !(exact > near && near > far) {
		t.Errorf("expected monotone similarity, got %v, %v, %v", exact, near, far)
	}
	if far >= w.SimilarityFloor {
		t.Errorf("unrelated labels scored %v, above floor %v", far, w.SimilarityFloor)
	}
}
