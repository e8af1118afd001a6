package model

// DomainLabel is the closed set of finance-process categories the
// classifier can assign to a problem statement
type DomainLabel string

const (
	LabelIntercompany   DomainLabel = "Intercompany"
	LabelConsolidation  DomainLabel = "Consolidation"
	LabelP2P            DomainLabel = "P2P"
	LabelO2C            DomainLabel = "O2C"
	LabelR2R            DomainLabel = "R2R"
	LabelGeneralFinance DomainLabel = "General Finance"
)

// AllLabels returns every label in classifier priority order,
// with the default label last
func AllLabels() []DomainLabel {
	return []DomainLabel{
		LabelIntercompany,
		LabelConsolidation,
		LabelP2P,
		LabelO2C,
		LabelR2R,
		LabelGeneralFinance,
	}
}

// IsValid reports whether the label belongs to the closed set
func (l DomainLabel) IsValid() bool {
	switch l {
	case LabelIntercompany, LabelConsolidation, LabelP2P, LabelO2C, LabelR2R, LabelGeneralFinance:
		return true
	default:
		return false
	}
}

func (l DomainLabel) String() string {
	return string(l)
}

// ParseLabel maps a raw string to a DomainLabel, falling back to
// General Finance for anything outside the closed set
func ParseLabel(s string) DomainLabel {
	label := DomainLabel(s)
	if label.IsValid() {
		return label
	}
	return LabelGeneralFinance
}
