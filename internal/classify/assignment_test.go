package classify

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"spendledger/internal/cache"
	"spendledger/internal/core"
	applog "spendledger/internal/log"
)

type fakeFallback struct {
	result map[string]string
	err    error
	calls  [][]string
}

func (f *fakeFallback) Classify(ctx context.Context, vendors []string) (map[string]string, error) {
	f.calls = append(f.calls, vendors)
	return f.result, f.err
}

func ledgerFor(vendors ...string) core.Ledger {
	ledger := make(core.Ledger, 0, len(vendors))
	for _, v := range vendors {
		vendor := v
		amount := 10.0
		ledger = append(ledger, core.TransactionRecord{
			Vendor: &vendor,
			Amount: &amount,
			Source: core.SourceBank,
		})
	}
	return ledger
}

func TestAssignerKeywordOnly(t *testing.T) {
	logger := applog.New(applog.DefaultConfig())
	fb := &fakeFallback{}
	vc := cache.Load(filepath.Join(t.TempDir(), "cache.json"), logger)
	a := NewAssigner(NewVendorClassifier(core.DefaultCategoryMap()), fb, vc, logger)

	got := a.Build(context.Background(), ledgerFor("Starbucks", "Uber Trip"))

	if got["Starbucks"] != "food" || got["Uber Trip"] != "transport" {
		t.Errorf("assignment = %v", got)
	}
	if len(fb.calls) != 0 {
		t.Errorf("fallback called %d times for keyword-resolved vendors", len(fb.calls))
	}
}

func TestAssignerFallbackMerge(t *testing.T) {
	logger := applog.New(applog.DefaultConfig())
	fb := &fakeFallback{result: map[string]string{"Quantum Widgets": "shopping"}}
	cachePath := filepath.Join(t.TempDir(), "cache.json")
	vc := cache.Load(cachePath, logger)
	a := NewAssigner(NewVendorClassifier(core.DefaultCategoryMap()), fb, vc, logger)

	got := a.Build(context.Background(), ledgerFor("Quantum Widgets", "Starbucks", "Quantum Widgets"))

	if got["Quantum Widgets"] != "shopping" {
		t.Errorf("fallback category not merged: %v", got)
	}
	if got["Starbucks"] != "food" {
		t.Errorf("keyword category lost: %v", got)
	}
	if len(fb.calls) != 1 {
		t.Fatalf("fallback called %d times, want 1 batched call", len(fb.calls))
	}
	if len(fb.calls[0]) != 1 || fb.calls[0][0] != "Quantum Widgets" {
		t.Errorf("fallback queried %v, want deduplicated [Quantum Widgets]", fb.calls[0])
	}

	// The merged result must be served from the cache on the next run even
	// when the fallback is down.
	vc2 := cache.Load(cachePath, logger)
	down := &fakeFallback{err: errors.New("unavailable")}
	a2 := NewAssigner(NewVendorClassifier(core.DefaultCategoryMap()), down, vc2, logger)

	got2 := a2.Build(context.Background(), ledgerFor("Quantum Widgets"))
	if got2["Quantum Widgets"] != "shopping" {
		t.Errorf("cached category not used: %v", got2)
	}
	if len(down.calls) != 0 {
		t.Errorf("fallback called for a cached vendor")
	}
}

func TestAssignerFallbackErrorDegradesToOther(t *testing.T) {
	logger := applog.New(applog.DefaultConfig())
	fb := &fakeFallback{err: errors.New("quota exceeded")}
	vc := cache.Load(filepath.Join(t.TempDir(), "cache.json"), logger)
	a := NewAssigner(NewVendorClassifier(core.DefaultCategoryMap()), fb, vc, logger)

	got := a.Build(context.Background(), ledgerFor("Quantum Widgets"))
	if got["Quantum Widgets"] != core.CategoryOther {
		t.Errorf("assignment = %v, want other on fallback failure", got)
	}
}

func TestAssignerCacheNeverOverridesKeyword(t *testing.T) {
	logger := applog.New(applog.DefaultConfig())
	cachePath := filepath.Join(t.TempDir(), "cache.json")
	vc := cache.Load(cachePath, logger)
	vc.Set("Starbucks", "shopping")
	a := NewAssigner(NewVendorClassifier(core.DefaultCategoryMap()), nil, vc, logger)

	got := a.Build(context.Background(), ledgerFor("Starbucks"))
	if got["Starbucks"] != "food" {
		t.Errorf("assignment = %v, keyword result must win over the cache", got)
	}
}

func TestAssignerNilFallbackAndCache(t *testing.T) {
	logger := applog.New(applog.DefaultConfig())
	a := NewAssigner(NewVendorClassifier(core.DefaultCategoryMap()), nil, nil, logger)

	got := a.Build(context.Background(), ledgerFor("Quantum Widgets"))
	if got["Quantum Widgets"] != core.CategoryOther {
		t.Errorf("assignment = %v", got)
	}
}
