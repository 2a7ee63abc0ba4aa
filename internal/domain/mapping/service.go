package mapping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivr/ivr/internal/domain/canonical"
	"github.com/ivr/ivr/internal/domain/resolver"
	"github.com/ivr/ivr/internal/domain/transform"
)

// ErrUnknownManufacturer signals resolution against a manufacturer
// with no registered schema. Unlike missing field values, this is a
// configuration error and fails the whole call.
var ErrUnknownManufacturer = errors.New("unknown manufacturer")

// ValueResolver finds the raw value of a canonical field.
// *resolver.Resolver satisfies it.
type ValueResolver interface {
	Resolve(ctx context.Context, fieldID string, rc *resolver.Context) (string, bool)
}

// Service resolves manufacturer schemas against request contexts and
// maintains the schema dictionary through confirmed mappings.
type Service struct {
	schemas  SchemaRepository
	values   ValueResolver
	recorder ConfirmationRecorder
	logger   zerolog.Logger

	// Distributor is the company name filled into defaultable
	// distributor fields.
	Distributor string

	now func() time.Time
}

// NewService wires the mapping service. recorder may be nil when no
// mapping history is kept.
func NewService(schemas SchemaRepository, values ValueResolver, recorder ConfirmationRecorder, logger zerolog.Logger) *Service {
	return &Service{
		schemas:  schemas,
		values:   values,
		recorder: recorder,
		logger:   logger.With().Str("component", "mapping").Logger(),
		now:      time.Now,
	}
}

type fieldValue struct {
	name  string
	value string
	ok    bool
}

// ResolveForManufacturer resolves every partner field in the
// manufacturer's schema. Field resolutions run concurrently; the
// completeness report is computed once all of them finish.
func (s *Service) ResolveForManufacturer(ctx context.Context, manufacturerID string, rc *resolver.Context) (*Result, error) {
	schema, err := s.schemas.GetSchema(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}

	results := make([]fieldValue, len(schema.Fields))
	var wg sync.WaitGroup
	for i, fm := range schema.Fields {
		wg.Add(1)
		go func(i int, fm FieldMapping) {
			defer wg.Done()
			results[i] = s.resolveField(ctx, schema, fm, rc)
		}(i, fm)
	}
	wg.Wait()

	res := &Result{
		ManufacturerID:   manufacturerID,
		Values:           make(map[string]string, len(schema.Fields)),
		ValidationErrors: []string{},
		Warnings:         []string{},
	}

	nonEmpty := 0
	for _, fv := range results {
		if fv.ok {
			res.Values[fv.name] = fv.value
			nonEmpty++
		}
	}
	if len(schema.Fields) > 0 {
		res.CompletenessPct = float64(nonEmpty) / float64(len(schema.Fields)) * 100
	}

	required := 0
	for _, rf := range schema.RequiredFields {
		if v, ok := res.Values[rf]; ok && v != "" {
			required++
		} else {
			res.ValidationErrors = append(res.ValidationErrors, fmt.Sprintf("Missing required field: %s", rf))
		}
	}
	if len(schema.RequiredFields) > 0 {
		res.RequiredCompletenessPct = float64(required) / float64(len(schema.RequiredFields)) * 100
	} else {
		res.RequiredCompletenessPct = 100
	}

	for _, fm := range schema.Fields {
		if _, known := canonical.Lookup(fm.CanonicalField); !known {
			res.Warnings = append(res.Warnings, fmt.Sprintf("unknown canonical field: %s", fm.CanonicalField))
		}
	}

	s.logger.Debug().
		Str("manufacturer_id", manufacturerID).
		Int("fields", len(schema.Fields)).
		Float64("completeness_pct", res.CompletenessPct).
		Msg("schema resolved")
	return res, nil
}

func (s *Service) resolveField(ctx context.Context, schema *Schema, fm FieldMapping, rc *resolver.Context) fieldValue {
	raw, ok := s.values.Resolve(ctx, fm.CanonicalField, rc)
	if !ok {
		if def, has := s.defaultValue(fm.CanonicalField); has {
			raw, ok = def, true
		}
	}
	if !ok {
		return fieldValue{name: fm.PartnerField}
	}

	v := transform.Run(raw, pipelineFor(fm.CanonicalField))
	v = transform.Run(v, fm.Override)
	v = applyQuirks(schema.Quirks, canonical.Type(fm.CanonicalField), v)
	return fieldValue{name: fm.PartnerField, value: v, ok: v != ""}
}

// defaultValue supplies values for defaultable fields that resolved to
// absent. Non-defaultable fields never receive a default.
func (s *Service) defaultValue(fieldID string) (string, bool) {
	field, ok := canonical.Lookup(fieldID)
	if !ok || !field.Defaultable {
		return "", false
	}
	now := s.now()
	switch fieldID {
	case "todays_date", "signature_date":
		return now.Format("01/02/2006"), true
	case "current_time":
		return now.Format("03:04:05 PM"), true
	case "distributor_name":
		if s.Distributor != "" {
			return s.Distributor, true
		}
		return "", false
	}
	if field.Type == canonical.TypeBoolean {
		return "Yes", true
	}
	return "", false
}

// Manufacturers lists every manufacturer with a registered schema.
func (s *Service) Manufacturers(ctx context.Context) ([]ManufacturerInfo, error) {
	return s.schemas.ListManufacturers(ctx)
}

// GetSchema returns a manufacturer's latest schema.
func (s *Service) GetSchema(ctx context.Context, manufacturerID string) (*Schema, error) {
	return s.schemas.GetSchema(ctx, manufacturerID)
}

// ConfirmMapping persists one human-confirmed partner-field mapping as
// a new schema version and records it for the historical suggestion
// signal. A confirmation for an unknown manufacturer starts a fresh
// schema. Re-confirming a mapping the schema already carries records
// the confirmation but leaves the schema version alone.
func (s *Service) ConfirmMapping(ctx context.Context, manufacturerID, partnerField, canonicalField string, confidence float64) (*Schema, error) {
	if partnerField == "" || canonicalField == "" {
		return nil, fmt.Errorf("partner and canonical field names are required")
	}
	if _, known := canonical.Lookup(canonicalField); !known {
		return nil, fmt.Errorf("unknown canonical field %q", canonicalField)
	}

	schema, err := s.schemas.GetSchema(ctx, manufacturerID)
	switch {
	case errors.Is(err, ErrUnknownManufacturer):
		schema = &Schema{ManufacturerID: manufacturerID, Name: manufacturerID, FormType: "ivr"}
	case err != nil:
		return nil, err
	}

	// Re-confirming an identical mapping reinforces the history
	// signal without publishing a new schema version.
	if fm, ok := schema.fieldByPartnerName(partnerField); ok && fm.CanonicalField == canonicalField {
		s.recordConfirmation(ctx, manufacturerID, partnerField, canonicalField, confidence)
		return schema, nil
	}

	replaced := false
	for i, fm := range schema.Fields {
		if fm.PartnerField == partnerField {
			schema.Fields[i].CanonicalField = canonicalField
			replaced = true
			break
		}
	}
	if !replaced {
		schema.Fields = append(schema.Fields, FieldMapping{
			PartnerField:   partnerField,
			CanonicalField: canonicalField,
		})
	}

	if err := s.schemas.SaveSchema(ctx, schema); err != nil {
		return nil, fmt.Errorf("save schema: %w", err)
	}

	s.recordConfirmation(ctx, manufacturerID, partnerField, canonicalField, confidence)
	return schema, nil
}

// recordConfirmation writes the history row; failures are logged and
// do not fail the confirmation.
func (s *Service) recordConfirmation(ctx context.Context, manufacturerID, partnerField, canonicalField string, confidence float64) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordConfirmation(ctx, manufacturerID, partnerField, canonicalField, confidence); err != nil {
		s.logger.Warn().Err(err).
			Str("manufacturer_id", manufacturerID).
			Str("partner_field", partnerField).
			Msg("failed to record mapping confirmation")
	}
}
