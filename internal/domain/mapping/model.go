// Package mapping resolves a manufacturer's form schema against a
// request context: every partner field is resolved to a canonical
// value, transformed, and scored for completeness.
package mapping

import (
	"time"

	"github.com/google/uuid"

	"github.com/ivr/ivr/internal/domain/transform"
)

// FieldMapping binds one partner form field to a canonical field,
// with optional per-field override rules run after the type pipeline.
type FieldMapping struct {
	PartnerField   string             `json:"partner_field" yaml:"partner_field"`
	CanonicalField string             `json:"canonical_field" yaml:"canonical_field"`
	Readonly       bool               `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Override       transform.Pipeline `json:"override_rules,omitempty" yaml:"override_rules,omitempty"`
}

// Schema is one manufacturer's complete field dictionary. Schemas are
// versioned; resolution always runs against the latest version and
// edits publish a new version rather than mutating in place.
type Schema struct {
	ID             uuid.UUID      `json:"id" yaml:"-"`
	ManufacturerID string         `json:"manufacturer_id" yaml:"manufacturer_id"`
	Name           string         `json:"name" yaml:"name"`
	FormType       string         `json:"form_type" yaml:"form_type"`
	Version        int            `json:"version" yaml:"version"`
	Fields         []FieldMapping `json:"fields" yaml:"fields"`
	// RequiredFields lists partner field names this manufacturer
	// insists on, independent of the canonical catalog's flags.
	RequiredFields []string  `json:"required_fields,omitempty" yaml:"required_fields,omitempty"`
	Quirks         []string  `json:"quirks,omitempty" yaml:"quirks,omitempty"`
	CreatedAt      time.Time `json:"created_at" yaml:"-"`
}

// fieldByPartnerName returns the mapping row for a partner field name.
func (s *Schema) fieldByPartnerName(name string) (FieldMapping, bool) {
	for _, f := range s.Fields {
		if f.PartnerField == name {
			return f, true
		}
	}
	return FieldMapping{}, false
}

// ManufacturerInfo is the listing view of a registered manufacturer.
type ManufacturerInfo struct {
	ManufacturerID string `json:"manufacturer_id"`
	Name           string `json:"name"`
	FormType       string `json:"form_type"`
	Version        int    `json:"version"`
	FieldCount     int    `json:"field_count"`
}

// Result is the outcome of one resolution run. It is rebuilt from
// scratch on every call and never cached here.
type Result struct {
	ManufacturerID          string            `json:"manufacturer_id"`
	Values                  map[string]string `json:"values"`
	CompletenessPct         float64           `json:"completeness_pct"`
	RequiredCompletenessPct float64           `json:"required_completeness_pct"`
	ValidationErrors        []string          `json:"validation_errors"`
	Warnings                []string          `json:"warnings"`
}
