package engine

import "github.com/bivenue/copilot/internal/model"

// Generator produces the rule-based recommendation block for a domain
// label. It is a stateless lookup: the problem text is accepted for
// future extension but does not affect selection.
type Generator struct {
	catalog map[model.DomainLabel]model.RecommendationBlock
}

// NewGenerator creates a generator with the standard catalog
func NewGenerator() *Generator {
	return &Generator{catalog: buildCatalog()}
}

// Recommend returns the recommendation block for the given label.
// Total over any label value: anything outside the closed set falls
// back to the General Finance content, never an error - callers
// (UI, report renderer) must always have something to show.
func (g *Generator) Recommend(label model.DomainLabel, text string) model.RecommendationBlock {
	_ = text // Selection is keyed by label only

	if block, ok := g.catalog[label]; ok {
		return block
	}
	return g.catalog[model.LabelGeneralFinance]
}

func buildCatalog() map[model.DomainLabel]model.RecommendationBlock {
	return map[model.DomainLabel]model.RecommendationBlock{
		model.LabelIntercompany: {
			Domain: model.LabelIntercompany,
			RootCauses: []string{
				"Mismatched transaction timing",
				"Lack of automated matching rules",
				"Missing entity-level reconciliation governance",
			},
			Actions: []string{
				"Implement automated IC reconciliation in SAP / Oracle.",
				"Create standardized IC templates & entity-level deadlines.",
				"Introduce rule-based matching (amount, currency, tolerance).",
			},
		},
		model.LabelConsolidation: {
			Domain: model.LabelConsolidation,
			RootCauses: []string{
				"Late submissions from entities",
				"Manual consolidation adjustments",
				"Lack of validations before group close",
			},
			Actions: []string{
				"Introduce pre-close validation checks.",
				"Automate consolidation journals in BlackLine / OneStream.",
				"Enforce entity-level submission SLAs.",
			},
		},
		model.LabelP2P: {
			Domain: model.LabelP2P,
			RootCauses: []string{
				"Invoice exceptions causing delays",
				"Vendor master inconsistencies",
				"Manual PO approvals",
			},
			Actions: []string{
				"Implement 3-way match automation.",
				"Establish vendor master governance.",
				"Digitize PO approval workflow.",
			},
		},
		model.LabelO2C: {
			Domain: model.LabelO2C,
			RootCauses: []string{
				"Delayed billing",
				"Manual cash application",
				"Credit management inefficiencies",
			},
			Actions: []string{
				"Automate billing triggers.",
				"Deploy cash application tools (HighRadius).",
				"Implement credit scoring & DSO dashboards.",
			},
		},
		model.LabelR2R: {
			Domain: model.LabelR2R,
			RootCauses: []string{
				"Manual journal entries",
				"Delayed reconciliations",
				"Lack of standardized close checklist",
			},
			Actions: []string{
				"Automate recurring journals in ERP.",
				"Implement BlackLine reconciliations.",
				"Deploy a global month-end close calendar.",
			},
		},
		model.LabelGeneralFinance: {
			Domain: model.LabelGeneralFinance,
			RootCauses: []string{
				"Fragmented processes without a defined target operating model",
				"Low automation coverage across the finance cycle",
				"Inconsistent controls and data governance",
			},
			Actions: []string{
				"Assess AS-IS / TO-BE processes.",
				"Define automation roadmap.",
				"Standardize controls & governance.",
				"Align Process + Tech + Data + People.",
			},
		},
	}
}
