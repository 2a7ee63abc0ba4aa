package suggest

import (
	"fmt"
	"regexp"
	"strconv"
)

// patternRule binds one label regex to a canonical field. Rules are
// checked in order and the first match wins.
type patternRule struct {
	re         *regexp.Regexp
	field      string
	confidence float64
}

var patternRules = []patternRule{
	{regexp.MustCompile(`(?i)^(physician|provider)\s+name$`), "provider_name", 0.95},
	{regexp.MustCompile(`(?i)^(physician|provider)\s+specialty$`), "provider_specialty", 0.9},
	{regexp.MustCompile(`(?i)^(physician|provider)\s+npi$`), "provider_npi", 0.95},
	{regexp.MustCompile(`(?i)^npi$`), "provider_npi", 0.9},
	{regexp.MustCompile(`(?i)^tax\s+id$`), "provider_tax_id", 0.9},
	{regexp.MustCompile(`(?i)^ptan$`), "provider_ptan", 0.9},
	{regexp.MustCompile(`(?i)^medicaid\s+#$`), "provider_medicaid_number", 0.9},
	{regexp.MustCompile(`(?i)^facility\s+name$`), "facility_name", 0.95},
	{regexp.MustCompile(`(?i)^facility\s+address$`), "facility_address", 0.9},
	{regexp.MustCompile(`(?i)^patient\s+name$`), "patient_name", 0.95},
	{regexp.MustCompile(`(?i)patient.*(dob|date\s+of\s+birth|birth)`), "patient_dob", 0.95},
	{regexp.MustCompile(`(?i)^primary\s+insurance$`), "primary_insurance_name", 0.9},
	{regexp.MustCompile(`(?i)^primary\s+policy\s+number$`), "primary_policy_number", 0.9},
	{regexp.MustCompile(`(?i)^(member|policy)\s+id$`), "primary_policy_number", 0.85},
	{regexp.MustCompile(`(?i)^icd-?10\s+codes?$`), "primary_diagnosis_code", 0.9},
	{regexp.MustCompile(`(?i)^wound\s+size$`), "wound_size_total", 0.85},
	{regexp.MustCompile(`(?i)^wound\s+location$`), "wound_location", 0.9},
	{regexp.MustCompile(`(?i)^wound\s+type$`), "wound_type", 0.9},
	{regexp.MustCompile(`(?i)^place\s+of\s+service$`), "place_of_service", 0.9},
	{regexp.MustCompile(`(?i)^product\s+name$`), "product_name", 0.9},
	{regexp.MustCompile(`(?i)^(q|hcpcs)\s*code$`), "product_code", 0.85},
	{regexp.MustCompile(`(?i)^date\s+of\s+service$`), "expected_service_date", 0.85},
}

// indexedRule matches numbered repeats of a field, e.g.
// "Physician NPI 3", mapping the captured index into the canonical id.
type indexedRule struct {
	re         *regexp.Regexp
	template   string
	confidence float64
}

var indexedRules = []indexedRule{
	{regexp.MustCompile(`(?i)^(?:physician|provider)\s+npi\s+(\d+)$`), "provider_npi_%d", 0.85},
}

// matchPattern runs the ordered pattern rules against a label. The
// second return is false when no rule matches.
func matchPattern(label string) (Suggestion, bool) {
	for _, r := range patternRules {
		if r.re.MatchString(label) {
			return Suggestion{
				Label:          label,
				CanonicalField: r.field,
				Confidence:     r.confidence,
				Method:         MethodPattern,
				Reason:         "label matches a known field pattern",
			}, true
		}
	}
	for _, r := range indexedRules {
		m := r.re.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return Suggestion{
			Label:          label,
			CanonicalField: fmt.Sprintf(r.template, idx),
			Confidence:     r.confidence,
			Method:         MethodPattern,
			Reason:         "label matches an indexed field pattern",
		}, true
	}
	return Suggestion{}, false
}
