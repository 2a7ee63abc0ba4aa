package mapping

import "context"

// SchemaRepository persists manufacturer schemas. GetSchema returns
// the latest version for a manufacturer.
type SchemaRepository interface {
	GetSchema(ctx context.Context, manufacturerID string) (*Schema, error)
	ListManufacturers(ctx context.Context) ([]ManufacturerInfo, error)
	SaveSchema(ctx context.Context, schema *Schema) error
}

// ConfirmationRecorder records a human-confirmed mapping so the
// suggestion engine's historical signal can learn from it.
type ConfirmationRecorder interface {
	RecordConfirmation(ctx context.Context, manufacturerID, partnerField, canonicalField string, confidence float64) error
}
