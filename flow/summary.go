package flow

import (
	"strings"

	"github.com/donorflow/server/model"
)

var operatorSymbols = map[model.Operator]string{
	model.OPERATOR_EQUALS:       "=",
	model.OPERATOR_GREATER_THAN: ">",
	model.OPERATOR_LESS_THAN:    "<",
	model.OPERATOR_CONTAINS:     "contains",
}

// SummarizeTrigger renders a trigger's rule set as a deterministic
// human-readable line. It is a pure function of the trigger value and
// backs both list views and duplicate/preview contexts.
func SummarizeTrigger(t model.Trigger) string {
	if t.Rules.Kind == model.RULE_BODY_LEGACY {
		return summarizeLegacyActions(t.Rules.LegacyActions)
	}
	if len(t.Rules.Conditions) == 0 {
		return capitalize(string(t.Type)) + " trigger with no conditions configured"
	}
	fragments := make([]string, 0, len(t.Rules.Conditions))
	for _, condition := range t.Rules.Conditions {
		fragments = append(fragments, summarizeCondition(condition))
	}
	return strings.Join(fragments, " | ")
}

func summarizeCondition(c model.Condition) string {
	if len(c.Rows) == 0 {
		return "Empty condition"
	}
	var sb strings.Builder
	for i, row := range c.Rows {
		if i > 0 {
			// the preceding row holds the operator joining it to this one
			join := c.Rows[i-1].LogicalOperator
			if join == "" {
				join = model.LOGICAL_AND
			}
			sb.WriteString(" ")
			sb.WriteString(string(join))
			sb.WriteString(" ")
		}
		sb.WriteString(row.Field)
		sb.WriteString(" ")
		sb.WriteString(operatorSymbol(row.Operator))
		sb.WriteString(" \"")
		sb.WriteString(row.Value)
		sb.WriteString("\"")
	}
	return "IF " + sb.String() + " " + summarizeActions(c.Actions)
}

func summarizeActions(actions []model.Action) string {
	if len(actions) == 0 {
		return "THEN (no actions)"
	}
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, ActionLabel(string(action.Type)))
	}
	return "THEN " + strings.Join(labels, ", ")
}

func summarizeLegacyActions(actions []string) string {
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, ActionLabel(action))
	}
	return strings.Join(labels, ", ")
}

func operatorSymbol(op model.Operator) string {
	if symbol, ok := operatorSymbols[op]; ok {
		return symbol
	}
	return string(op)
}

// ActionLabel renders an action type name for display: underscores become
// spaces and each word is capitalized ("send_to_mailchimp" -> "Send To
// Mailchimp").
func ActionLabel(actionType string) string {
	words := strings.Split(strings.ReplaceAll(actionType, "_", " "), " ")
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
