package engine

import (
	"strings"

	"github.com/bivenue/copilot/internal/model"
)

// rule maps a keyword set to a domain label. A rule matches when any
// of its keywords appears as a substring of the lowercased input -
// tokens like "p2p" and "r2r" are atomic, so no word-boundary check.
type rule struct {
	label    model.DomainLabel
	keywords []string
}

// Classifier maps free-text problem statements to one domain label.
// Rules are evaluated in a fixed priority order and the first match
// wins: an input mentioning both "intercompany" and "p2p" classifies
// as Intercompany. The ordering is a documented contract.
type Classifier struct {
	rules []rule
}

// NewClassifier creates a classifier with the standard rule set
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{model.LabelIntercompany, []string{"intercompany"}},
			{model.LabelConsolidation, []string{"consolidation"}},
			{model.LabelP2P, []string{"p2p", "procure"}},
			{model.LabelO2C, []string{"o2c", "order"}},
			{model.LabelR2R, []string{"r2r", "record", "close"}},
		},
	}
}

// Classify returns exactly one label for any input, including empty
// strings. Classification is total: when no keyword matches, the
// default General Finance label is returned. Pure function, no error
// path.
func (c *Classifier) Classify(text string) model.DomainLabel {
	lower := strings.ToLower(text)

	for _, r := range c.rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lower, keyword) {
				return r.label
			}
		}
	}

	return model.LabelGeneralFinance
}
