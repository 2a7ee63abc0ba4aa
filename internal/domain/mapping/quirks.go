package mapping

import (
	"strings"

	"github.com/ivr/ivr/internal/domain/canonical"
)

// quirk is one manufacturer-specific post-formatting step, applied
// after the generic pipeline and any override rules. New partners add
// quirk names to their schema instead of new code paths here.
type quirk func(fieldType canonical.FieldType, value string) string

// quirkRegistry holds the named quirks a schema may reference.
var quirkRegistry = map[string]quirk{
	// Boolean fields rendered as uppercase YES, with blank for no.
	"uppercase_yes_blank": func(ft canonical.FieldType, v string) string {
		if ft != canonical.TypeBoolean {
			return v
		}
		if strings.EqualFold(v, "yes") {
			return "YES"
		}
		return ""
	},
	// Boolean fields rendered as a checkmark glyph, blank for no.
	"checkmark_boolean": func(ft canonical.FieldType, v string) string {
		if ft != canonical.TypeBoolean {
			return v
		}
		if strings.EqualFold(v, "yes") {
			return "✓"
		}
		return ""
	},
	// Date fields rendered with hyphens instead of slashes.
	"hyphenated_dates": func(ft canonical.FieldType, v string) string {
		if ft != canonical.TypeDate {
			return v
		}
		return strings.ReplaceAll(v, "/", "-")
	},
	// Free-text fields uppercased for all-caps form layouts.
	"uppercase_text": func(ft canonical.FieldType, v string) string {
		if ft != canonical.TypeString {
			return v
		}
		return strings.ToUpper(v)
	},
}

// applyQuirks runs a schema's quirks in declared order. Unknown quirk
// names are skipped.
func applyQuirks(names []string, ft canonical.FieldType, value string) string {
	for _, name := range names {
		if q, ok := quirkRegistry[name]; ok {
			value = q(ft, value)
		}
	}
	return value
}
