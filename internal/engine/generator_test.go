package engine

import (
	"strings"
	"testing"

	"github.com/bivenue/copilot/internal/model"
)

func TestGenerator_TotalOverLabelSet(t *testing.T) {
	g := NewGenerator()

	for _, label := range model.AllLabels() {
		block := g.Recommend(label, "any text")

		if block.Domain != label {
			t.Errorf("Expected block domain %s, got %s", label, block.Domain)
		}
		if len(block.RootCauses) == 0 {
			t.Errorf("Expected non-empty root causes for %s", label)
		}
		if len(block.Actions) == 0 {
			t.Errorf("Expected non-empty actions for %s", label)
		}
	}
}

func TestGenerator_IndependentOfProblemText(t *testing.T) {
	g := NewGenerator()

	texts := []string{"", "short", strings.Repeat("long ", 5000), "ünïcödé 🚀"}

	for _, label := range model.AllLabels() {
		base := g.Recommend(label, "baseline")
		for _, text := range texts {
			other := g.Recommend(label, text)
			if len(other.RootCauses) != len(base.RootCauses) || len(other.Actions) != len(base.Actions) {
				t.Errorf("Recommendation for %s varied with problem text", label)
				continue
			}
			for i := range base.RootCauses {
				if other.RootCauses[i] != base.RootCauses[i] {
					t.Errorf("Root cause %d for %s varied with problem text", i, label)
				}
			}
			for i := range base.Actions {
				if other.Actions[i] != base.Actions[i] {
					t.Errorf("Action %d for %s varied with problem text", i, label)
				}
			}
		}
	}
}

func TestGenerator_OutOfRangeLabelFallsBack(t *testing.T) {
	g := NewGenerator()

	block := g.Recommend(model.DomainLabel("Treasury"), "some text")

	if block.Domain != model.LabelGeneralFinance {
		t.Errorf("Expected General Finance fallback, got %s", block.Domain)
	}
	if len(block.Actions) != 4 {
		t.Errorf("Expected the four-step transformation checklist, got %d actions", len(block.Actions))
	}
}

func TestGenerator_DefaultChecklist(t *testing.T) {
	g := NewGenerator()

	block := g.Recommend(model.LabelGeneralFinance, "")

	if len(block.Actions) != 4 {
		t.Fatalf("Expected 4 checklist steps, got %d", len(block.Actions))
	}
	if !strings.Contains(block.Actions[0], "AS-IS") {
		t.Errorf("Expected checklist to start with AS-IS assessment, got %q", block.Actions[0])
	}
}

func TestGenerator_RoundTripWithClassifier(t *testing.T) {
	c := NewClassifier()
	g := NewGenerator()

	inputs := []string{
		"",
		"intercompany mismatch",
		"completely unrelated text",
		strings.Repeat("x", 20_000),
		"非ASCII入力でも動作すること",
	}

	for _, input := range inputs {
		label := c.Classify(input)
		block := g.Recommend(label, input)

		if len(block.RootCauses) == 0 || len(block.Actions) == 0 {
			t.Errorf("Round trip produced empty block for input %.30q", input)
		}
	}
}

func TestRecommendationBlock_Render(t *testing.T) {
	g := NewGenerator()
	block := g.Recommend(model.LabelP2P, "")

	out := block.Render()

	if !strings.Contains(out, model.SectionRootCauses) {
		t.Errorf("Expected rendered block to contain %q section", model.SectionRootCauses)
	}
	if !strings.Contains(out, model.SectionActions) {
		t.Errorf("Expected rendered block to contain %q section", model.SectionActions)
	}
	if !strings.Contains(out, "1. Implement 3-way match automation.") {
		t.Error("Expected actions to be numbered in order")
	}
}
