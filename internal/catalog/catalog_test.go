package catalog

import (
	"strings"
	"sync"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	csv := strings.Join([]string{
		"sku,name,max_quantity",
		"X1,Widget,10",
		"X2,Gasket,",
		",Nameless,5",      // missing sku: skipped
		"X3,,5",            // missing name: skipped
		"X4,Bolt,not-a-number", // bad ceiling: kept without ceiling
		"X1,Widget Mk2,20", // duplicate sku: last wins
	}, "\n")

	snap, stats, err := LoadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if stats.Rows != 6 || stats.Skipped != 2 || stats.Loaded != 3 {
		t.Fatalf("stats = %+v", stats)
	}

	x1, ok := snap.Lookup("X1")
	if !ok {
		t.Fatalf("X1 missing")
	}
	if x1.Name != "Widget Mk2" || x1.MaxQuantity == nil || *x1.MaxQuantity != 20 {
		t.Fatalf("duplicate sku should keep the last row, got %+v", x1)
	}

	x2, ok := snap.Lookup("X2")
	if !ok || x2.MaxQuantity != nil {
		t.Fatalf("X2 should have no ceiling, got %+v", x2)
	}

	x4, ok := snap.Lookup("X4")
	if !ok || x4.MaxQuantity != nil {
		t.Fatalf("bad ceiling should be dropped, not the row: %+v", x4)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	snap, _, err := LoadCSV(strings.NewReader("sku,name\nAbC-1,Thing\n"))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	for _, key := range []string{"abc-1", "ABC-1", " aBc-1 "} {
		if _, ok := snap.Lookup(key); !ok {
			t.Fatalf("lookup %q failed", key)
		}
	}
}

func TestLoadCSVMissingSKUColumn(t *testing.T) {
	if _, _, err := LoadCSV(strings.NewReader("name,max_quantity\nWidget,5\n")); err == nil {
		t.Fatalf("expected error for header without sku column")
	}
}

func TestLoadCSVEmpty(t *testing.T) {
	snap, stats, err := LoadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(snap) != 0 || stats.Rows != 0 {
		t.Fatalf("empty input should load nothing: %+v %+v", snap, stats)
	}
}

func TestStoreReplaceIsAtomic(t *testing.T) {
	store := NewStore()
	if got := store.Current(); len(got) != 0 {
		t.Fatalf("fresh store should be empty, got %+v", got)
	}

	a := Snapshot{"X1": {SKU: "X1", Name: "Widget"}}
	store.Replace(a)

	held := store.Current()
	b := Snapshot{"X2": {SKU: "X2", Name: "Gasket"}}
	store.Replace(b)

	// a snapshot taken before the swap still sees the old table
	if _, ok := held.Lookup("X1"); !ok {
		t.Fatalf("held snapshot lost its entries after Replace")
	}
	if _, ok := held.Lookup("X2"); ok {
		t.Fatalf("held snapshot sees entries installed after it was taken")
	}
	if _, ok := store.Current().Lookup("X2"); !ok {
		t.Fatalf("current snapshot missing the new table")
	}
}

func TestStoreConcurrentReadersAndReplace(t *testing.T) {
	store := NewStore()
	store.Replace(Snapshot{"X1": {SKU: "X1", Name: "Widget"}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := store.Current()
				// a snapshot is always a complete table: either the
				// old single entry or the new one, never in between
				if len(snap) != 1 {
					t.Errorf("torn snapshot: %+v", snap)
					return
				}
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		store.Replace(Snapshot{"X2": {SKU: "X2", Name: "Gasket"}})
	}
	wg.Wait()
}
