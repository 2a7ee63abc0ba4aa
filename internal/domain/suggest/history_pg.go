package suggest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivr/ivr/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type historyRepoPG struct{ pool *pgxpool.Pool }

// NewHistoryRepoPG builds the postgres-backed history repository over
// the mapping_history table.
func NewHistoryRepoPG(pool *pgxpool.Pool) HistoryRepository { return &historyRepoPG{pool: pool} }

func (r *historyRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *historyRepoPG) RecordConfirmation(ctx context.Context, manufacturerID, partnerField, canonicalField string, confidence float64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO mapping_history (manufacturer_id, partner_field, canonical_field, confidence, confirmed_at)
		VALUES ($1, $2, $3, $4, now())`,
		manufacturerID, partnerField, canonicalField, confidence)
	if err != nil {
		return fmt.Errorf("record confirmation: %w", err)
	}
	return nil
}

func (r *historyRepoPG) FindByLabel(ctx context.Context, label string, floor float64) ([]HistoryEntry, error) {
	// Stored partner fields and the incoming label are reduced to the
	// same underscored key before the containment check, matching
	// MemoryHistory.FindByLabel.
	needle := fieldNameFromLabel(label)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT manufacturer_id, partner_field, canonical_field, confidence, confirmed_at
		FROM mapping_history
		WHERE confidence >= $2
		  AND (
			trim(both '_' from regexp_replace(lower(partner_field), '[^a-z0-9]+', '_', 'g')) LIKE '%' || $1 || '%'
			OR $1 LIKE '%' || trim(both '_' from regexp_replace(lower(partner_field), '[^a-z0-9]+', '_', 'g')) || '%'
		  )
		ORDER BY confidence DESC, confirmed_at DESC`,
		needle, floor)
	if err != nil {
		return nil, fmt.Errorf("find history by label: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ManufacturerID, &e.PartnerField, &e.CanonicalField, &e.Confidence, &e.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
