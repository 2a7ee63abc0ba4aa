// Package canonical defines the partner-independent field catalog that
// every manufacturer form field ultimately maps onto.
package canonical

// FieldType is the semantic type of a canonical field. It drives which
// formatting pipeline a field's resolved value is run through.
type FieldType string

const (
	TypeString      FieldType = "string"
	TypeDate        FieldType = "date"
	TypePhone       FieldType = "phone"
	TypeEmail       FieldType = "email"
	TypeBoolean     FieldType = "boolean"
	TypeCurrency    FieldType = "currency"
	TypeMeasurement FieldType = "measurement"
	TypeNumber      FieldType = "number"
	TypeCodeList    FieldType = "code_list"
	TypeEnum        FieldType = "enum"
)

// Field describes one canonical data point. The catalog is immutable
// configuration; nothing mutates Fields at runtime.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Defaultable bool      `json:"defaultable,omitempty"`
	EnumOptions []string  `json:"enum_options,omitempty"`
}
