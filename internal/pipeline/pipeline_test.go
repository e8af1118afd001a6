package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bivenue/copilot/internal/model"
	"github.com/bivenue/copilot/internal/search"
)

func testConfig(t *testing.T) *model.Config {
	t.Helper()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	return cfg
}

func TestPipeline_AdviseClassifiesAndRecommends(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)
	defer p.Close()

	advisory, err := p.Advise(context.Background(), "Our intercompany balances never tie out", nil)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}

	if advisory.Domain != model.LabelIntercompany {
		t.Errorf("Expected Intercompany, got %s", advisory.Domain)
	}
	if advisory.ID == "" {
		t.Error("Expected an ID to be assigned")
	}
	if advisory.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be assigned")
	}
	if len(advisory.Recommendation.Actions) == 0 {
		t.Error("Expected recommended actions")
	}
	if advisory.LLM != nil {
		t.Error("Expected no LLM brief when provider is disabled")
	}
}

func TestPipeline_AdviseEmptyProblem(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)
	defer p.Close()

	if _, err := p.Advise(context.Background(), "   ", nil); err == nil {
		t.Error("Expected error for empty problem statement")
	}
}

func TestPipeline_AdvisePersistsToHistory(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)
	defer p.Close()

	advisory, err := p.Advise(context.Background(), "month-end close takes too long", nil)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}

	if p.store == nil {
		t.Fatal("Expected history store to be enabled")
	}

	got, err := p.store.Get(advisory.ID)
	if err != nil {
		t.Fatalf("Expected advisory in history: %v", err)
	}
	if got.Domain != model.LabelR2R {
		t.Errorf("Expected R2R, got %s", got.Domain)
	}
}

func TestPipeline_AdviseWithHistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false
	p := NewPipeline(cfg)
	defer p.Close()

	if p.store != nil {
		t.Error("Expected no history store when disabled")
	}

	if _, err := p.Advise(context.Background(), "duplicate vendor invoices", nil); err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
}

func TestPipeline_AskWithoutSearchEndpoint(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)
	defer p.Close()

	_, _, err := p.Ask(context.Background(), "how do peers automate IC netting?")
	if !errors.Is(err, search.ErrNotConfigured) {
		t.Errorf("Expected search.ErrNotConfigured, got %v", err)
	}
}

func TestPipeline_RenderAdvisory(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false
	p := NewPipeline(cfg)
	defer p.Close()

	advisory, err := p.Advise(context.Background(), "procurement cycle times keep slipping", nil)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "advisory.json")
	mdPath := filepath.Join(dir, "advisory.md")
	onePagerPath := filepath.Join(dir, "onepager.md")

	if err := p.RenderAdvisory(advisory, jsonPath, mdPath, onePagerPath, false); err != nil {
		t.Fatalf("RenderAdvisory failed: %v", err)
	}

	for _, path := range []string{jsonPath, mdPath, onePagerPath} {
		if _, err := os.ReadFile(path); err != nil {
			t.Errorf("Expected output file %s: %v", path, err)
		}
	}
}

func TestRenderer_Markdown(t *testing.T) {
	advisory := &model.Advisory{
		Problem: "order-to-cash DSO is climbing",
		Domain:  model.LabelO2C,
		Recommendation: model.RecommendationBlock{
			Domain:     model.LabelO2C,
			RootCauses: []string{"Manual credit checks"},
			Actions:    []string{"Automate invoice generation and dunning."},
		},
	}

	out := NewRenderer(true).Markdown(advisory)

	if !strings.Contains(out, "# Advisory: O2C") {
		t.Error("Expected domain heading")
	}
	if !strings.Contains(out, "Manual credit checks") {
		t.Error("Expected root causes")
	}
	if !strings.Contains(out, "1. Automate invoice generation and dunning.") {
		t.Error("Expected numbered actions")
	}
	if !strings.Contains(out, "*Generated by Bivenue Copilot*") {
		t.Error("Expected footer")
	}

	noFooter := NewRenderer(false).Markdown(advisory)
	if strings.Contains(noFooter, "*Generated by Bivenue Copilot*") {
		t.Error("Expected no footer when disabled")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := truncate(strings.Repeat("x", 20), 10); got != strings.Repeat("x", 10)+"..." {
		t.Errorf("Expected truncated string, got %q", got)
	}
}
