package suggest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// HistoryEntry is one confirmed partner-field mapping kept for the
// historical frequency signal. Confidence is on a 0-100 scale as
// recorded at confirmation time.
type HistoryEntry struct {
	ManufacturerID string    `json:"manufacturer_id"`
	PartnerField   string    `json:"partner_field"`
	CanonicalField string    `json:"canonical_field"`
	Confidence     float64   `json:"confidence"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}

// HistoryRepository stores confirmed mappings across all
// manufacturers. RecordConfirmation also satisfies the mapping
// package's ConfirmationRecorder.
type HistoryRepository interface {
	RecordConfirmation(ctx context.Context, manufacturerID, partnerField, canonicalField string, confidence float64) error
	// FindByLabel returns entries whose partner field name contains
	// the label or vice versa, with confidence at or above floor.
	FindByLabel(ctx context.Context, label string, floor float64) ([]HistoryEntry, error)
}

// MemoryHistory is an in-process HistoryRepository used when no
// database is configured and in tests.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

func NewMemoryHistory() *MemoryHistory { return &MemoryHistory{} }

func (m *MemoryHistory) RecordConfirmation(_ context.Context, manufacturerID, partnerField, canonicalField string, confidence float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, HistoryEntry{
		ManufacturerID: manufacturerID,
		PartnerField:   partnerField,
		CanonicalField: canonicalField,
		Confidence:     confidence,
		ConfirmedAt:    time.Now().UTC(),
	})
	return nil
}

func (m *MemoryHistory) FindByLabel(_ context.Context, label string, floor float64) ([]HistoryEntry, error) {
	// Both sides go through the same key function, so confirmations
	// recorded under derived keys match the raw label they came from.
	needle := fieldNameFromLabel(label)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []HistoryEntry
	for _, e := range m.entries {
		if e.Confidence < floor {
			continue
		}
		name := fieldNameFromLabel(e.PartnerField)
		if needle == "" || (!strings.Contains(name, needle) && !strings.Contains(needle, name)) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out, nil
}
