package model

import (
	"encoding/json"
	"strings"
)

type TriggerType string

const TRIGGER_TYPE_TASK TriggerType = "task"
const TRIGGER_TYPE_SEGMENT TriggerType = "segment"
const TRIGGER_TYPE_FLAG TriggerType = "flag"
const TRIGGER_TYPE_KEYWORD TriggerType = "keyword"
const TRIGGER_TYPE_ATTRIBUTE TriggerType = "attribute"
const TRIGGER_TYPE_NOTE TriggerType = "note"
const TRIGGER_TYPE_EVENT TriggerType = "event"
const TRIGGER_TYPE_DIALR TriggerType = "dialr"
const TRIGGER_TYPE_TARGETPATH TriggerType = "targetpath"
const TRIGGER_TYPE_MAILCHIMP TriggerType = "mailchimp"
const TRIGGER_TYPE_CONSTANTCONTACT TriggerType = "constantcontact"
const TRIGGER_TYPE_GIFT TriggerType = "gift"
const TRIGGER_TYPE_PLEDGE TriggerType = "pledge"
const TRIGGER_TYPE_ACTION TriggerType = "action"
const TRIGGER_TYPE_SELECTED_AUDIENCE TriggerType = "selected_audience"
const TRIGGER_TYPE_MOVES TriggerType = "moves"
const TRIGGER_TYPE_APPLY_SMART_TAG TriggerType = "apply_smart_tag"

// triggerTypeLabels overrides the auto-generated display name for types
// whose canonical spelling is not a plain capitalization of the enum value.
var triggerTypeLabels = map[TriggerType]string{
	TRIGGER_TYPE_DIALR:             "DialR",
	TRIGGER_TYPE_TARGETPATH:        "TargetPath",
	TRIGGER_TYPE_MAILCHIMP:         "Mailchimp",
	TRIGGER_TYPE_CONSTANTCONTACT:   "Constant Contact",
	TRIGGER_TYPE_SELECTED_AUDIENCE: "Selected Audience",
	TRIGGER_TYPE_MOVES:             "Moves Management",
	TRIGGER_TYPE_APPLY_SMART_TAG:   "Smart Tag",
}

// Label returns the human-readable name of the trigger type.
func (t TriggerType) Label() string {
	if label, ok := triggerTypeLabels[t]; ok {
		return label
	}
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DefaultName is the display name given to a freshly added trigger.
func (t TriggerType) DefaultName() string {
	return "New " + t.Label() + " Trigger"
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Trigger is a single entry point of a flow. Position is layout-only and
// carries no business meaning.
type Trigger struct {
	Id       string         `json:"id"`
	Type     TriggerType    `json:"type"`
	Name     string         `json:"name"`
	Config   map[string]any `json:"config,omitempty"`
	Rules    RuleBody       `json:"-"`
	Position Position       `json:"position"`
	IsActive bool           `json:"isActive"`
}

type RuleBodyKind int

const (
	// RULE_BODY_STRUCTURED carries condition groups with nested actions.
	RULE_BODY_STRUCTURED RuleBodyKind = iota
	// RULE_BODY_LEGACY carries the pre-condition-model flat action list
	// found under config.actions in old trigger data.
	RULE_BODY_LEGACY
)

// RuleBody is a two-variant rule set: structured condition groups, or the
// legacy flat action-name list. Exactly one variant is populated.
type RuleBody struct {
	Kind          RuleBodyKind
	Conditions    []Condition
	LegacyActions []string
}

func StructuredRules(conditions []Condition) RuleBody {
	return RuleBody{Kind: RULE_BODY_STRUCTURED, Conditions: conditions}
}

func LegacyRules(actions []string) RuleBody {
	return RuleBody{Kind: RULE_BODY_LEGACY, LegacyActions: actions}
}

type triggerWire struct {
	Id         string         `json:"id"`
	Type       TriggerType    `json:"type"`
	Name       string         `json:"name"`
	Config     map[string]any `json:"config,omitempty"`
	Conditions []Condition    `json:"conditions,omitempty"`
	Position   Position       `json:"position"`
	IsActive   bool           `json:"isActive"`
}

func (t Trigger) MarshalJSON() ([]byte, error) {
	wire := triggerWire{
		Id:       t.Id,
		Type:     t.Type,
		Name:     t.Name,
		Config:   t.Config,
		Position: t.Position,
		IsActive: t.IsActive,
	}
	switch t.Rules.Kind {
	case RULE_BODY_LEGACY:
		if wire.Config == nil {
			wire.Config = make(map[string]any)
		} else {
			cp := make(map[string]any, len(wire.Config))
			for k, v := range wire.Config {
				cp[k] = v
			}
			wire.Config = cp
		}
		wire.Config["actions"] = t.Rules.LegacyActions
	default:
		wire.Conditions = t.Rules.Conditions
	}
	return json.Marshal(wire)
}

func (t *Trigger) UnmarshalJSON(data []byte) error {
	var wire triggerWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t.Id = wire.Id
	t.Type = wire.Type
	t.Name = wire.Name
	t.Config = wire.Config
	t.Position = wire.Position
	t.IsActive = wire.IsActive

	if actions, ok := legacyActionList(wire.Config); ok && len(wire.Conditions) == 0 {
		delete(t.Config, "actions")
		t.Rules = LegacyRules(actions)
		return nil
	}
	t.Rules = StructuredRules(wire.Conditions)
	return nil
}

func legacyActionList(config map[string]any) ([]string, bool) {
	raw, ok := config["actions"]
	if !ok {
		return nil, false
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	actions := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		actions = append(actions, s)
	}
	return actions, true
}
