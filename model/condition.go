package model

type Operator string

const OPERATOR_EQUALS Operator = "equals"
const OPERATOR_NOT_EQUALS Operator = "not_equals"
const OPERATOR_GREATER_THAN Operator = "greater_than"
const OPERATOR_LESS_THAN Operator = "less_than"
const OPERATOR_CONTAINS Operator = "contains"

type LogicalOperator string

const LOGICAL_AND LogicalOperator = "AND"
const LOGICAL_OR LogicalOperator = "OR"

// ConditionRow is one field/operator/value comparison. LogicalOperator on
// row i joins row i to row i+1; the last row's operator is ignored. An
// unset operator joins as AND. Rows form a flat left-to-right chain with
// no precedence or grouping.
type ConditionRow struct {
	Field           string          `json:"field"`
	Operator        Operator        `json:"operator"`
	Value           string          `json:"value"`
	LogicalOperator LogicalOperator `json:"logicalOperator,omitempty"`
}

// Condition is a rule group: when all rows match, the attached actions
// apply. A condition with no rows is valid and summarized as empty.
type Condition struct {
	Id      string         `json:"id"`
	Rows    []ConditionRow `json:"conditions"`
	Actions []Action       `json:"actions"`
}
