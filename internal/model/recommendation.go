package model

import (
	"fmt"
	"strings"
)

// Section titles used when a RecommendationBlock is rendered as text
const (
	SectionRootCauses = "Root Cause Diagnosis"
	SectionActions    = "Recommended Actions"
)

// RecommendationBlock is the structured diagnostic text produced for a
// domain label: diagnosed root causes plus ordered remediation steps.
// It is derived data - deterministic given the label, never persisted
// by the engine itself.
type RecommendationBlock struct {
	Domain     DomainLabel `json:"domain"`
	RootCauses []string    `json:"root_causes"`
	Actions    []string    `json:"actions"`
}

// Render serializes the block as markdown, suitable for terminal
// output, report injection, and LLM prompt context
func (b RecommendationBlock) Render() string {
	var sb strings.Builder

	sb.WriteString("**" + SectionRootCauses + "**\n")
	for _, cause := range b.RootCauses {
		sb.WriteString("- " + cause + "\n")
	}

	sb.WriteString("\n**" + SectionActions + "**\n")
	for i, action := range b.Actions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, action))
	}

	return sb.String()
}
