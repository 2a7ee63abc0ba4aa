// Package transform implements the value transformation rule engine used
// when rendering canonical field values into manufacturer form fields.
//
// Every operation is total: malformed input degrades to a best-effort
// pass-through of the original value, never an error. The pipeline runs
// over free-text data entered by humans or extracted by OCR, where
// slightly-off formats are the common case.
package transform

import "strconv"

// Kind groups operations by what they do to a value.
type Kind string

const (
	KindParse     Kind = "parse"
	KindFormat    Kind = "format"
	KindConvert   Kind = "convert"
	KindNormalize Kind = "normalize"
)

// Params carries the optional parameters of a single rule.
type Params map[string]any

// String returns the named parameter as a string, or def when it is
// missing or not representable as a string.
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return def
}

// Int returns the named parameter as an int, or def when it is missing
// or not numeric.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return def
}

// Rule is one transformation step: a kind, an operation within that
// kind, and optional parameters.
type Rule struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Op     string `json:"operation" yaml:"operation"`
	Params Params `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Pipeline is an ordered sequence of rules applied left to right.
type Pipeline []Rule

// opFunc is the signature every operation implements.
type opFunc func(value string, p Params) string

// operations is the closed dispatch table. Unknown kind/operation pairs
// are deliberately absent so Apply treats them as no-ops.
var operations = map[Kind]map[string]opFunc{
	KindParse: {
		"address": parseAddressOp,
		"name":    parseNameOp,
		"split":   parseSplitOp,
	},
	KindFormat: {
		"phone":     formatPhoneOp,
		"date":      formatDateOp,
		"ssn":       formatSSNOp,
		"taxid":     formatTaxIDOp,
		"uppercase": formatUppercaseOp,
		"lowercase": formatLowercaseOp,
		"titlecase": formatTitlecaseOp,
	},
	KindConvert: {
		"boolean":    convertBooleanOp,
		"pos_code":   convertPOSCodeOp,
		"state_abbr": convertStateAbbrOp,
		"number":     convertNumberOp,
	},
	KindNormalize: {
		"whitespace":     normalizeWhitespaceOp,
		"alphanumeric":   normalizeAlphanumericOp,
		"numeric":        normalizeNumericOp,
		"remove_special": normalizeRemoveSpecialOp,
	},
}

// Apply runs a single rule against a value. Unrecognized kinds and
// operations return the input unchanged.
func Apply(value string, r Rule) string {
	ops, ok := operations[r.Kind]
	if !ok {
		return value
	}
	fn, ok := ops[r.Op]
	if !ok {
		return value
	}
	return fn(value, r.Params)
}

// Run applies every rule in the pipeline in order.
func Run(value string, pipeline Pipeline) string {
	for _, r := range pipeline {
		value = Apply(value, r)
	}
	return value
}
