package history

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bivenue/copilot/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sampleAdvisory() *model.Advisory {
	return &model.Advisory{
		Problem: "intercompany balances never tie out",
		Domain:  model.LabelIntercompany,
		Recommendation: model.RecommendationBlock{
			Domain:     model.LabelIntercompany,
			RootCauses: []string{"Mismatched transaction timing"},
			Actions:    []string{"Implement automated IC reconciliation in SAP / Oracle."},
		},
	}
}

func TestStore_SaveAssignsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)

	advisory := sampleAdvisory()
	if err := store.Save(advisory); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if advisory.ID == "" {
		t.Error("Expected ID to be assigned on save")
	}
	if advisory.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be assigned on save")
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)

	advisory := sampleAdvisory()
	advisory.LLM = &model.LLMBrief{
		Enabled:  true,
		Provider: "openai",
		BriefMD:  "# Consulting Brief: IC Fix",
	}

	if err := store.Save(advisory); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(advisory.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.Problem != advisory.Problem {
		t.Errorf("Expected problem %q, got %q", advisory.Problem, got.Problem)
	}
	if got.Domain != model.LabelIntercompany {
		t.Errorf("Expected Intercompany, got %s", got.Domain)
	}
	if len(got.Recommendation.RootCauses) != 1 || got.Recommendation.RootCauses[0] != "Mismatched transaction timing" {
		t.Errorf("Recommendation did not round-trip: %+v", got.Recommendation)
	}
	if got.LLM == nil || got.LLM.Provider != "openai" || got.LLM.BriefMD == "" {
		t.Errorf("Brief did not round-trip: %+v", got.LLM)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get("no-such-id"); err == nil {
		t.Error("Expected error for missing advisory")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	older := sampleAdvisory()
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	if err := store.Save(older); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	newer := sampleAdvisory()
	newer.Problem = "consolidation adjustments are manual"
	newer.Domain = model.LabelConsolidation
	if err := store.Save(newer); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	advisories, err := store.List(10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(advisories) != 2 {
		t.Fatalf("Expected 2 advisories, got %d", len(advisories))
	}
	if advisories[0].ID != newer.ID {
		t.Error("Expected newest advisory first")
	}
}

func TestStore_ListByDomain(t *testing.T) {
	store := newTestStore(t)

	ic := sampleAdvisory()
	if err := store.Save(ic); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p2p := sampleAdvisory()
	p2p.Domain = model.LabelP2P
	p2p.Problem = "invoice exceptions pile up"
	if err := store.Save(p2p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	advisories, err := store.ListByDomain(model.LabelP2P, 10)
	if err != nil {
		t.Fatalf("ListByDomain failed: %v", err)
	}

	if len(advisories) != 1 {
		t.Fatalf("Expected 1 P2P advisory, got %d", len(advisories))
	}
	if advisories[0].Domain != model.LabelP2P {
		t.Errorf("Expected P2P, got %s", advisories[0].Domain)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	advisory := sampleAdvisory()
	if err := store.Save(advisory); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(advisory.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(advisory.ID); err == nil {
		t.Error("Expected advisory to be gone after delete")
	}

	if err := store.Delete(advisory.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows for double delete, got %v", err)
	}
}
