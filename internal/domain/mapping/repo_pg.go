package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivr/ivr/internal/domain/transform"
	"github.com/ivr/ivr/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type schemaRepoPG struct{ pool *pgxpool.Pool }

// NewSchemaRepoPG builds the postgres-backed schema repository.
func NewSchemaRepoPG(pool *pgxpool.Pool) SchemaRepository { return &schemaRepoPG{pool: pool} }

func (r *schemaRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *schemaRepoPG) GetSchema(ctx context.Context, manufacturerID string) (*Schema, error) {
	var (
		s            Schema
		requiredJSON []byte
		quirksJSON   []byte
	)
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, manufacturer_id, name, form_type, version, required_fields, quirks, created_at
		FROM partner_schemas
		WHERE manufacturer_id = $1
		ORDER BY version DESC
		LIMIT 1`, manufacturerID).
		Scan(&s.ID, &s.ManufacturerID, &s.Name, &s.FormType, &s.Version, &requiredJSON, &quirksJSON, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownManufacturer
	}
	if err != nil {
		return nil, fmt.Errorf("load schema for %s: %w", manufacturerID, err)
	}
	if len(requiredJSON) > 0 {
		if err := json.Unmarshal(requiredJSON, &s.RequiredFields); err != nil {
			return nil, fmt.Errorf("decode required fields: %w", err)
		}
	}
	if len(quirksJSON) > 0 {
		if err := json.Unmarshal(quirksJSON, &s.Quirks); err != nil {
			return nil, fmt.Errorf("decode quirks: %w", err)
		}
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT partner_field, canonical_field, readonly, override_rules
		FROM partner_field_mappings
		WHERE schema_id = $1
		ORDER BY position`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("load field mappings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			fm           FieldMapping
			overrideJSON []byte
		)
		if err := rows.Scan(&fm.PartnerField, &fm.CanonicalField, &fm.Readonly, &overrideJSON); err != nil {
			return nil, err
		}
		if len(overrideJSON) > 0 {
			var pipeline transform.Pipeline
			if err := json.Unmarshal(overrideJSON, &pipeline); err != nil {
				return nil, fmt.Errorf("decode override rules for %s: %w", fm.PartnerField, err)
			}
			fm.Override = pipeline
		}
		s.Fields = append(s.Fields, fm)
	}
	return &s, rows.Err()
}

func (r *schemaRepoPG) ListManufacturers(ctx context.Context) ([]ManufacturerInfo, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT DISTINCT ON (s.manufacturer_id)
			s.manufacturer_id, s.name, s.form_type, s.version,
			(SELECT COUNT(*) FROM partner_field_mappings m WHERE m.schema_id = s.id)
		FROM partner_schemas s
		ORDER BY s.manufacturer_id, s.version DESC`)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()

	var items []ManufacturerInfo
	for rows.Next() {
		var info ManufacturerInfo
		if err := rows.Scan(&info.ManufacturerID, &info.Name, &info.FormType, &info.Version, &info.FieldCount); err != nil {
			return nil, err
		}
		items = append(items, info)
	}
	return items, rows.Err()
}

// SaveSchema publishes a new schema version. The previous version is
// left untouched so in-flight resolutions keep a consistent view.
func (r *schemaRepoPG) SaveSchema(ctx context.Context, schema *Schema) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		conn := r.conn(ctx)

		var latest int
		err := conn.QueryRow(ctx, `
			SELECT COALESCE(MAX(version), 0) FROM partner_schemas WHERE manufacturer_id = $1`,
			schema.ManufacturerID).Scan(&latest)
		if err != nil {
			return fmt.Errorf("read latest version: %w", err)
		}
		schema.Version = latest + 1
		schema.ID = uuid.New()

		requiredJSON, err := json.Marshal(schema.RequiredFields)
		if err != nil {
			return fmt.Errorf("encode required fields: %w", err)
		}
		quirksJSON, err := json.Marshal(schema.Quirks)
		if err != nil {
			return fmt.Errorf("encode quirks: %w", err)
		}

		_, err = conn.Exec(ctx, `
			INSERT INTO partner_schemas (id, manufacturer_id, name, form_type, version, required_fields, quirks)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			schema.ID, schema.ManufacturerID, schema.Name, schema.FormType, schema.Version, requiredJSON, quirksJSON)
		if err != nil {
			return fmt.Errorf("insert schema: %w", err)
		}

		for i, fm := range schema.Fields {
			overrideJSON, err := json.Marshal(fm.Override)
			if err != nil {
				return fmt.Errorf("encode override rules for %s: %w", fm.PartnerField, err)
			}
			_, err = conn.Exec(ctx, `
				INSERT INTO partner_field_mappings (id, schema_id, partner_field, canonical_field, readonly, override_rules, position)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				uuid.New(), schema.ID, fm.PartnerField, fm.CanonicalField, fm.Readonly, overrideJSON, i)
			if err != nil {
				return fmt.Errorf("insert field mapping %s: %w", fm.PartnerField, err)
			}
		}
		return nil
	})
}
