package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriggerRuleBody(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"test structured round trip":     testStructuredRoundTrip,
		"test legacy actions recognized": testLegacyActionsRecognized,
		"test legacy round trip":         testLegacyRoundTrip,
		"test default names":             testDefaultNames,
	} {
		t.Run(scenario, fn)
	}
}

func testStructuredRoundTrip(t *testing.T) {
	trigger := Trigger{
		Id:   "t1",
		Type: TRIGGER_TYPE_GIFT,
		Name: "Large Gift",
		Rules: StructuredRules([]Condition{
			{
				Id:      "c1",
				Rows:    []ConditionRow{{Field: "gift_amount", Operator: OPERATOR_GREATER_THAN, Value: "1000", LogicalOperator: LOGICAL_OR}},
				Actions: []Action{{Id: "a1", Type: ACTION_TYPE_ADD_TASK, Config: map[string]any{"title": "Call donor"}}},
			},
		}),
		Position: Position{X: 150, Y: 150},
		IsActive: true,
	}
	data, err := json.Marshal(trigger)
	require.NoError(t, err)

	var decoded Trigger
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, RULE_BODY_STRUCTURED, decoded.Rules.Kind)
	require.Len(t, decoded.Rules.Conditions, 1)
	require.Equal(t, "c1", decoded.Rules.Conditions[0].Id)
	require.Equal(t, LOGICAL_OR, decoded.Rules.Conditions[0].Rows[0].LogicalOperator)
	require.Equal(t, "Call donor", decoded.Rules.Conditions[0].Actions[0].Config["title"])
}

func testLegacyActionsRecognized(t *testing.T) {
	raw := `{
		"id": "t2",
		"type": "segment",
		"name": "Old Segment Trigger",
		"config": {"actions": ["add_task", "send_to_mailchimp"], "segment": "majors"},
		"position": {"x": 100, "y": 100},
		"isActive": true
	}`
	var decoded Trigger
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	require.Equal(t, RULE_BODY_LEGACY, decoded.Rules.Kind)
	require.Equal(t, []string{"add_task", "send_to_mailchimp"}, decoded.Rules.LegacyActions)
	// the action list is lifted out of the config bag; other keys stay
	require.NotContains(t, decoded.Config, "actions")
	require.Equal(t, "majors", decoded.Config["segment"])
}

func testLegacyRoundTrip(t *testing.T) {
	trigger := Trigger{
		Id:       "t3",
		Type:     TRIGGER_TYPE_SEGMENT,
		Rules:    LegacyRules([]string{"add_flag"}),
		IsActive: true,
	}
	data, err := json.Marshal(trigger)
	require.NoError(t, err)

	var decoded Trigger
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, RULE_BODY_LEGACY, decoded.Rules.Kind)
	require.Equal(t, []string{"add_flag"}, decoded.Rules.LegacyActions)
}

func testDefaultNames(t *testing.T) {
	require.Equal(t, "New Gift Trigger", TRIGGER_TYPE_GIFT.DefaultName())
	require.Equal(t, "New DialR Trigger", TRIGGER_TYPE_DIALR.DefaultName())
	require.Equal(t, "New Constant Contact Trigger", TRIGGER_TYPE_CONSTANTCONTACT.DefaultName())
	require.Equal(t, "New Smart Tag Trigger", TRIGGER_TYPE_APPLY_SMART_TAG.DefaultName())
}
