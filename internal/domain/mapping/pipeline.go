package mapping

import (
	"github.com/ivr/ivr/internal/domain/canonical"
	"github.com/ivr/ivr/internal/domain/transform"
)

// typePipelines selects the generic formatting pipeline for each
// semantic type. Per-field override rules in the schema run after
// these.
var typePipelines = map[canonical.FieldType]transform.Pipeline{
	canonical.TypeDate: {
		{Kind: transform.KindFormat, Op: "date", Params: transform.Params{"format": "m/d/Y"}},
	},
	canonical.TypePhone: {
		{Kind: transform.KindFormat, Op: "phone"},
	},
	canonical.TypeBoolean: {
		{Kind: transform.KindConvert, Op: "boolean"},
	},
	canonical.TypeNumber: {
		{Kind: transform.KindConvert, Op: "number"},
	},
	canonical.TypeCurrency: {
		{Kind: transform.KindConvert, Op: "number"},
	},
	canonical.TypeMeasurement: {
		{Kind: transform.KindConvert, Op: "number"},
	},
	canonical.TypeString: {
		{Kind: transform.KindNormalize, Op: "whitespace"},
	},
	canonical.TypeEnum: {
		{Kind: transform.KindNormalize, Op: "whitespace"},
		{Kind: transform.KindFormat, Op: "lowercase"},
	},
	canonical.TypeEmail: {
		{Kind: transform.KindNormalize, Op: "whitespace"},
		{Kind: transform.KindFormat, Op: "lowercase"},
	},
	canonical.TypeCodeList: {
		{Kind: transform.KindNormalize, Op: "whitespace"},
	},
}

// fieldPipelines overrides the type pipeline for canonical fields that
// carry domain-specific encodings.
var fieldPipelines = map[string]transform.Pipeline{
	"place_of_service": {
		{Kind: transform.KindConvert, Op: "pos_code"},
	},
	"patient_state": {
		{Kind: transform.KindConvert, Op: "state_abbr"},
	},
	"facility_state": {
		{Kind: transform.KindConvert, Op: "state_abbr"},
	},
	"patient_ssn": {
		{Kind: transform.KindFormat, Op: "ssn"},
	},
	"provider_tax_id": {
		{Kind: transform.KindFormat, Op: "taxid"},
	},
	"facility_tax_id": {
		{Kind: transform.KindFormat, Op: "taxid"},
	},
	"provider_npi": {
		{Kind: transform.KindNormalize, Op: "numeric"},
	},
	"facility_npi": {
		{Kind: transform.KindNormalize, Op: "numeric"},
	},
}

// pipelineFor returns the pipeline run for one canonical field before
// any schema overrides.
func pipelineFor(canonicalID string) transform.Pipeline {
	if p, ok := fieldPipelines[canonicalID]; ok {
		return p
	}
	return typePipelines[canonical.Type(canonicalID)]
}
