package catalog

import (
	"strings"
	"sync/atomic"

	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// Snapshot is one consistent view of the reference catalog, keyed by
// normalized SKU. A Snapshot is never modified after load; callers that
// need fresh data install a whole new table through Store.Replace.
type Snapshot map[string]entity.CatalogEntry

// NormalizeSKU upper-cases and trims a SKU so that catalog keys are
// case-insensitive and unique.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Lookup returns the entry for sku, matching case-insensitively.
func (s Snapshot) Lookup(sku string) (entity.CatalogEntry, bool) {
	e, ok := s[NormalizeSKU(sku)]
	return e, ok
}

// Entries returns all entries in no particular order.
func (s Snapshot) Entries() []entity.CatalogEntry {
	out := make([]entity.CatalogEntry, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	return out
}

// Store holds the session catalog. Replacement is an atomic swap of the
// whole table, so an in-flight pipeline run always sees one consistent
// snapshot even if another session replaces the catalog mid-run.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	s := &Store{}
	empty := Snapshot{}
	s.snap.Store(&empty)
	return s
}

// Replace installs a complete new table. There is no partial edit path.
func (s *Store) Replace(snap Snapshot) {
	if snap == nil {
		snap = Snapshot{}
	}
	s.snap.Store(&snap)
}

// Current returns the snapshot visible to a pipeline run starting now.
func (s *Store) Current() Snapshot {
	return *s.snap.Load()
}
