package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivr/ivr/internal/platform/fhirclient"
)

// ExternalRecords is the external clinical record store consulted as
// the last resolution step. *fhirclient.Client satisfies it.
type ExternalRecords interface {
	GetResource(ctx context.Context, resourceType, id string) (fhirclient.Resource, error)
}

// fhirPatientFields maps the canonical fields sourceable from an
// external Patient resource to their accessor.
var fhirPatientFields = map[string]func(fhirclient.Resource) string{
	"patient_first_name":    func(r fhirclient.Resource) string { return r.GivenName() },
	"patient_last_name":     func(r fhirclient.Resource) string { return r.FamilyName() },
	"patient_dob":           func(r fhirclient.Resource) string { return r.BirthDate() },
	"patient_gender":        func(r fhirclient.Resource) string { return r.Gender() },
	"patient_phone":         func(r fhirclient.Resource) string { return r.Telecom("phone") },
	"patient_email":         func(r fhirclient.Resource) string { return r.Telecom("email") },
	"patient_address_line1": func(r fhirclient.Resource) string { return r.AddressPart("line1") },
	"patient_address_line2": func(r fhirclient.Resource) string { return r.AddressPart("line2") },
	"patient_city":          func(r fhirclient.Resource) string { return r.AddressPart("city") },
	"patient_state":         func(r fhirclient.Resource) string { return r.AddressPart("state") },
	"patient_zip":           func(r fhirclient.Resource) string { return r.AddressPart("zip") },
}

// npiSystem is the HL7 naming system for US National Provider
// Identifiers on Practitioner resources.
const npiSystem = "http://hl7.org/fhir/sid/us-npi"

// fhirPractitionerFields maps the canonical fields sourceable from an
// external Practitioner resource to their accessor.
var fhirPractitionerFields = map[string]func(fhirclient.Resource) string{
	"provider_npi":   func(r fhirclient.Resource) string { return r.Identifier(npiSystem) },
	"provider_name":  func(r fhirclient.Resource) string { return joinNonEmpty(r.GivenName(), r.FamilyName()) },
	"provider_phone": func(r fhirclient.Resource) string { return r.Telecom("phone") },
	"provider_fax":   func(r fhirclient.Resource) string { return r.Telecom("fax") },
	"provider_email": func(r fhirclient.Resource) string { return r.Telecom("email") },
}

// Resolver finds raw values for canonical fields. It is stateless and
// safe for concurrent use.
type Resolver struct {
	external ExternalRecords
	timeout  time.Duration
	logger   zerolog.Logger
}

// New builds a Resolver. external may be nil when no clinical record
// store is configured; timeout bounds each external lookup.
func New(external ExternalRecords, timeout time.Duration, logger zerolog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Resolver{
		external: external,
		timeout:  timeout,
		logger:   logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve returns the raw value of a canonical field and whether one
// was found. Priority: explicit form data, the field's extractor,
// known aliases, then the external record store. External lookup
// failures are logged and reported as absent.
func (r *Resolver) Resolve(ctx context.Context, fieldID string, rc *Context) (string, bool) {
	if v, ok := r.local(fieldID, rc); ok {
		return v, true
	}

	for _, alternative := range aliases[fieldID] {
		parts := make([]string, 0, len(alternative))
		for _, key := range alternative {
			if v, ok := r.local(key, rc); ok {
				parts = append(parts, v)
			}
		}
		if joined := strings.Join(parts, " "); strings.TrimSpace(joined) != "" {
			return joined, true
		}
	}

	return r.externalLookup(ctx, fieldID, rc)
}

// local runs the form overlay and extractor steps for one key.
func (r *Resolver) local(key string, rc *Context) (string, bool) {
	if v, ok := rc.Form[key]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	if extract, ok := extractors[key]; ok {
		if v := extract(rc); v != "" {
			return v, true
		}
	}
	return "", false
}

func (r *Resolver) externalLookup(ctx context.Context, fieldID string, rc *Context) (string, bool) {
	if r.external == nil {
		return "", false
	}
	if accessor, ok := fhirPatientFields[fieldID]; ok && rc.FHIRPatientID != "" {
		return r.fetchExternal(ctx, fieldID, "Patient", rc.FHIRPatientID, accessor)
	}
	if accessor, ok := fhirPractitionerFields[fieldID]; ok && rc.FHIRPractitionerID != "" {
		return r.fetchExternal(ctx, fieldID, "Practitioner", rc.FHIRPractitionerID, accessor)
	}
	return "", false
}

func (r *Resolver) fetchExternal(ctx context.Context, fieldID, resourceType, id string, accessor func(fhirclient.Resource) string) (string, bool) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.external.GetResource(lookupCtx, resourceType, id)
	if err != nil {
		r.logger.Warn().Err(err).
			Str("field", fieldID).
			Str("resource_type", resourceType).
			Str("resource_id", id).
			Msg("external record lookup failed")
		return "", false
	}
	if v := accessor(res); v != "" {
		return v, true
	}
	return "", false
}
