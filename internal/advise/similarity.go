package advise

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// similarity is a normalized edit-distance score in [0,1], case-insensitive.
func similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// closestByName finds the catalog entry whose name is most similar to
// target. Entries are scanned in SKU order so ties resolve the same way
// on every run.
func closestByName(target string, snap catalog.Snapshot, cutoff float64) (entity.CatalogEntry, bool) {
	best, bestScore := entity.CatalogEntry{}, 0.0
	for _, e := range sortedEntries(snap) {
		if score := similarity(target, e.Name); score > bestScore {
			best, bestScore = e, score
		}
	}
	return best, bestScore >= cutoff && bestScore > 0
}

// closestBySKU finds the catalog entry whose SKU code is most similar
// to target.
func closestBySKU(target string, snap catalog.Snapshot, cutoff float64) (entity.CatalogEntry, bool) {
	best, bestScore := entity.CatalogEntry{}, 0.0
	for _, e := range sortedEntries(snap) {
		if score := similarity(target, e.SKU); score > bestScore {
			best, bestScore = e, score
		}
	}
	return best, bestScore >= cutoff && bestScore > 0
}

func sortedEntries(snap catalog.Snapshot) []entity.CatalogEntry {
	entries := snap.Entries()
	sort.Slice(entries, func(i, j int) bool {
		return catalog.NormalizeSKU(entries[i].SKU) < catalog.NormalizeSKU(entries[j].SKU)
	})
	return entries
}
